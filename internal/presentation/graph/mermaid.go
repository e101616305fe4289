package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
)

// GraphOverlay highlights a traced trajectory on top of the network.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart of the network.
// It applies semantic styling:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Default: [Rectangle]
// Edges are labelled with their instruction symbol; a node whose left and
// right successors coincide gets a single "L/R" edge.
func GenerateMermaid(net *domain.Network, start, final domain.Selector, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range net.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case final.Match(node.ID):
			opener, closer = "(((", ")))"
		case start.Match(node.ID):
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer)

		if node.Left == node.Right {
			fmt.Fprintf(&sb, "    %s -- \"%c/%c\" --> %s\n", safeID, domain.SymbolLeft, domain.SymbolRight, sanitizeMermaidID(node.Left))
			continue
		}
		for _, t := range node.Transitions() {
			fmt.Fprintf(&sb, "    %s -- \"%c\" --> %s\n", safeID, t.Symbol, sanitizeMermaidID(t.To))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so labels stay readable on both themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] || id == overlay.CurrentNode {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
		}
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

// sanitizeMermaidID keeps IDs away from Mermaid keywords and punctuation.
func sanitizeMermaidID(id string) string {
	if id == "" {
		return ""
	}
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return "n_" + r.Replace(id)
}
