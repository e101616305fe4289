package dsl

import "github.com/aretw0/lockstep/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.Node
}

// Left sets the successor taken on an L instruction.
func (n *NodeBuilder) Left(target string) *NodeBuilder {
	n.node.Left = target
	return n
}

// Right sets the successor taken on an R instruction.
func (n *NodeBuilder) Right(target string) *NodeBuilder {
	n.node.Right = target
	return n
}

// To sets both successors at once.
func (n *NodeBuilder) To(left, right string) *NodeBuilder {
	return n.Left(left).Right(right)
}

// Both sends either instruction to target.
func (n *NodeBuilder) Both(target string) *NodeBuilder {
	return n.To(target, target)
}

// Loop makes the node a sink that never leaves itself.
func (n *NodeBuilder) Loop() *NodeBuilder {
	return n.Both(n.node.ID)
}
