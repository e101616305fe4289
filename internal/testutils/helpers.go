package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/stretchr/testify/require"
)

// GhostNetwork is the two-ghost example: starts 11A and 22A first stand on
// Z nodes together at step 6.
const GhostNetwork = `LR

11A = (11B, XXX)
11B = (XXX, 11Z)
11Z = (11B, XXX)
22A = (22B, XXX)
22B = (22C, 22C)
22C = (22Z, 22Z)
22Z = (22B, 22B)
XXX = (XXX, XXX)
`

// GhostNodes returns the nodes of GhostNetwork.
func GhostNodes() *domain.Network {
	return &domain.Network{
		Instructions: "LR",
		Nodes: []domain.Node{
			{ID: "11A", Left: "11B", Right: "XXX"},
			{ID: "11B", Left: "XXX", Right: "11Z"},
			{ID: "11Z", Left: "11B", Right: "XXX"},
			{ID: "22A", Left: "22B", Right: "XXX"},
			{ID: "22B", Left: "22C", Right: "22C"},
			{ID: "22C", Left: "22Z", Right: "22Z"},
			{ID: "22Z", Left: "22B", Right: "22B"},
			{ID: "XXX", Left: "XXX", Right: "XXX"},
		},
	}
}

// WriteFile creates name with content in a temporary directory and returns
// its path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture")
	return path
}
