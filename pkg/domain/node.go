package domain

// Node is one entry of the network: a node ID and the successors taken on
// each instruction symbol.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Transitions returns the node's outgoing edges, left first.
func (n Node) Transitions() []Transition {
	return []Transition{
		{From: n.ID, Symbol: SymbolLeft, To: n.Left},
		{From: n.ID, Symbol: SymbolRight, To: n.Right},
	}
}
