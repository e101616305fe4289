package domain

// Transition is a single labelled edge of the network.
type Transition struct {
	From   string `json:"from" yaml:"from"`
	Symbol byte   `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`
}
