package dsl

import (
	"fmt"

	"github.com/aretw0/lockstep/pkg/domain"
)

// Builder manages the network construction. Nodes keep the order in which
// they were first added.
type Builder struct {
	instructions string
	order        []string
	nodes        map[string]*NodeBuilder
}

// New creates a builder for a network replaying instructions.
func New(instructions string) *Builder {
	return &Builder{
		instructions: instructions,
		nodes:        make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the network.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{node: domain.Node{ID: id}}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build assembles and validates the network.
func (b *Builder) Build() (*domain.Network, error) {
	net := &domain.Network{
		Instructions: b.instructions,
		Nodes:        make([]domain.Node, 0, len(b.order)),
	}
	for _, id := range b.order {
		net.Nodes = append(net.Nodes, b.nodes[id].node)
	}
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}
	return net, nil
}
