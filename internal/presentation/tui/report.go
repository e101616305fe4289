package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/ups"
)

// Report formats trajectories as a markdown document: one table row per
// start node with its stem and loop lengths and the first hits. When sol is
// non-nil the answer and the combined set are appended.
func Report(trajectories []domain.Trajectory, sol *domain.Solution, hits int) string {
	var sb strings.Builder
	sb.WriteString("# Trajectories\n\n")
	sb.WriteString("| Start | Stem | Loop | First hits | Source |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, t := range trajectories {
		source := "computed"
		if t.Cached {
			source = "cache"
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %s | %s |\n",
			t.Start, t.Set.StemLen(), t.Set.LoopLen(), formatHits(t.Set, hits), source)
	}

	if sol != nil {
		sb.WriteString("\n## Answer\n\n")
		fmt.Fprintf(&sb, "All %d trajectories first meet on a final node at step **%d**.\n\n", len(sol.Trajectories), sol.Steps)
		fmt.Fprintf(&sb, "Combined set: stem %d, loop %d, first hits %s.\n",
			sol.Combined.StemLen(), sol.Combined.LoopLen(), formatHits(sol.Combined, hits))
	}
	return sb.String()
}

func formatHits(set *ups.UPS, k int) string {
	if set.IsEmpty() {
		return "none"
	}
	head := set.Take(k)
	parts := make([]string, len(head))
	for i, v := range head {
		parts[i] = fmt.Sprint(v)
	}
	out := strings.Join(parts, ", ")
	if !set.IsFinite() || len(head) < len(set.StemElems()) {
		out += ", …"
	}
	return out
}
