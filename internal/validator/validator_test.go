package validator

import (
	"testing"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func network(nodes ...domain.Node) *domain.Network {
	return &domain.Network{Instructions: "LR", Nodes: nodes}
}

func TestValidateNetwork(t *testing.T) {
	a, z := domain.BySuffix("A"), domain.BySuffix("Z")

	// Scenario A: every start reaches a final node, one orphan.
	net := network(
		domain.Node{ID: "11A", Left: "11B", Right: "XXX"},
		domain.Node{ID: "11B", Left: "XXX", Right: "11Z"},
		domain.Node{ID: "11Z", Left: "11B", Right: "XXX"},
		domain.Node{ID: "XXX", Left: "XXX", Right: "XXX"},
		domain.Node{ID: "ORP", Left: "ORP", Right: "11A"},
	)
	report, err := ValidateNetwork(net, a, z)
	require.NoError(t, err)
	assert.Equal(t, []string{"11A"}, report.Starts)
	assert.Equal(t, []string{"ORP"}, report.Unreachable)
	assert.Empty(t, report.Stranded)
	assert.NoError(t, report.Err())

	// Scenario B: a start trapped in a sink.
	net.Nodes = append(net.Nodes, domain.Node{ID: "22A", Left: "SNK", Right: "SNK"}, domain.Node{ID: "SNK", Left: "SNK", Right: "SNK"})
	report, err = ValidateNetwork(net, a, z)
	require.NoError(t, err)
	assert.Equal(t, []string{"22A"}, report.Stranded)
	assert.ErrorIs(t, report.Err(), domain.ErrNoSolution)
}

func TestValidateNetwork_Errors(t *testing.T) {
	broken := network(domain.Node{ID: "AAA", Left: "GHOST", Right: "AAA"})
	_, err := ValidateNetwork(broken, domain.BySuffix("A"), domain.BySuffix("Z"))
	assert.ErrorIs(t, err, domain.ErrInvalidNetwork)

	noStarts := network(domain.Node{ID: "ZZZ", Left: "ZZZ", Right: "ZZZ"})
	_, err = ValidateNetwork(noStarts, domain.BySuffix("A"), domain.BySuffix("Z"))
	assert.ErrorIs(t, err, domain.ErrNoStartStates)
}
