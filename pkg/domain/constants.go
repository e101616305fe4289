package domain

// Instruction symbols. The left successor is taken on SymbolLeft and the
// right successor on SymbolRight.
const (
	SymbolLeft  byte = 'L'
	SymbolRight byte = 'R'
)

// Default selector suffixes: every node ending in "A" starts a trajectory and
// every node ending in "Z" is final.
const (
	DefaultStartSuffix = "A"
	DefaultFinalSuffix = "Z"
)
