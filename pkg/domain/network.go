package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lockstep/pkg/fsm"
)

// Network is a parsed map: an instruction string replayed forever and the
// nodes it steers through, in declaration order.
type Network struct {
	Instructions string `json:"instructions" yaml:"instructions"`
	Nodes        []Node `json:"nodes" yaml:"nodes"`
}

// IDs returns every node ID in declaration order.
func (n *Network) IDs() []string {
	ids := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		ids[i] = node.ID
	}
	return ids
}

// Select returns the IDs matched by sel, sorted.
func (n *Network) Select(sel Selector) []string {
	var ids []string
	for _, node := range n.Nodes {
		if sel.Match(node.ID) {
			ids = append(ids, node.ID)
		}
	}
	slices.Sort(ids)
	return ids
}

// Machine builds the transition table of the network. Nodes matched by final
// are the final states.
func (n *Network) Machine(final Selector) *fsm.Machine[string, byte] {
	m := fsm.New[string, byte](final.Match)
	for _, node := range n.Nodes {
		for _, t := range node.Transitions() {
			m.AddTransition(t.From, t.Symbol, t.To)
		}
	}
	return m
}

// Validate checks that the instructions only use known symbols, that node
// IDs are unique, and that every successor is declared.
func (n *Network) Validate() error {
	if n.Instructions == "" {
		return fmt.Errorf("%w: empty instructions", ErrInvalidNetwork)
	}
	for i := 0; i < len(n.Instructions); i++ {
		if c := n.Instructions[i]; c != SymbolLeft && c != SymbolRight {
			return fmt.Errorf("%w: unknown instruction %q at position %d", ErrInvalidNetwork, c, i)
		}
	}

	declared := make(map[string]bool, len(n.Nodes))
	for _, node := range n.Nodes {
		if node.ID == "" {
			return fmt.Errorf("%w: node missing ID", ErrInvalidNetwork)
		}
		if declared[node.ID] {
			return fmt.Errorf("%w: duplicate node %q", ErrInvalidNetwork, node.ID)
		}
		declared[node.ID] = true
	}

	var missing []string
	for _, node := range n.Nodes {
		for _, t := range node.Transitions() {
			if !declared[t.To] {
				missing = append(missing, fmt.Sprintf("%s -%c-> %s", t.From, t.Symbol, t.To))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %d undeclared successors:\n- %s", ErrInvalidNetwork, len(missing), strings.Join(missing, "\n- "))
	}
	return nil
}

// Digest identifies the network contents independently of node order.
func (n *Network) Digest() string {
	nodes := slices.Clone(n.Nodes)
	slices.SortFunc(nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })

	h := sha256.New()
	fmt.Fprintf(h, "%s\n", n.Instructions)
	for _, node := range nodes {
		fmt.Fprintf(h, "%s=%s,%s\n", node.ID, node.Left, node.Right)
	}
	return hex.EncodeToString(h.Sum(nil))
}
