package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
)

// Report summarizes the structure of a network as seen from its start nodes.
type Report struct {
	Starts []string
	// Unreachable lists nodes no start node can reach, in declaration order.
	Unreachable []string
	// Stranded lists start nodes from which no final node is reachable.
	// Any solve over them has no answer.
	Stranded []string
}

// Err returns an error describing stranded starts, or nil.
func (r *Report) Err() error {
	if len(r.Stranded) == 0 {
		return nil
	}
	return fmt.Errorf("%w: no final node reachable from %s", domain.ErrNoSolution, strings.Join(r.Stranded, ", "))
}

// ValidateNetwork checks the network for dangling links, then crawls it from
// every start node and reports unreachable nodes and stranded starts.
func ValidateNetwork(net *domain.Network, start, final domain.Selector) (*Report, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	starts := net.Select(start)
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoStartStates, start)
	}

	succ := make(map[string][]string, len(net.Nodes))
	for _, node := range net.Nodes {
		succ[node.ID] = []string{node.Left, node.Right}
	}

	report := &Report{Starts: starts}
	reachedAny := make(map[string]bool)
	for _, s := range starts {
		visited := crawl(s, succ)
		hitsFinal := false
		for id := range visited {
			reachedAny[id] = true
			if final.Match(id) {
				hitsFinal = true
			}
		}
		if !hitsFinal {
			report.Stranded = append(report.Stranded, s)
		}
	}

	for _, node := range net.Nodes {
		if !reachedAny[node.ID] {
			report.Unreachable = append(report.Unreachable, node.ID)
		}
	}
	slices.Sort(report.Stranded)
	return report, nil
}

// crawl returns every node reachable from start, start included. The
// instruction order is ignored, so this over-approximates a trajectory.
func crawl(start string, succ map[string][]string) map[string]bool {
	visited := map[string]bool{}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range succ[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
