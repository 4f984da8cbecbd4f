package workflow

import (
	"fmt"
	"strings"
)

const noContextFound = "No relevant context found in knowledge base or web search."

var sectionRule = strings.Repeat("=", 60)

// FormatContext serializes evidence and citations into the structured
// text block consumed by the generator and the grounding check. It is a
// pure function: the same inputs always yield identical text. Citation
// lines are omitted when the title is empty.
func FormatContext(
	nodeContents, edgeContents, webContents []string,
	nodeCitations, edgeCitations, webCitations []Citation,
) string {
	var parts []string

	if len(nodeContents) > 0 {
		parts = append(parts, sectionRule, "KNOWLEDGE GRAPH ENTITIES (Key Concepts)", sectionRule)
		for i, content := range nodeContents {
			parts = append(parts, fmt.Sprintf("\n[Entity %d]", i+1), content)
			if i < len(nodeCitations) && nodeCitations[i].Title != "" {
				parts = append(parts, fmt.Sprintf("  Source: %s", nodeCitations[i].Title))
			}
		}
		parts = append(parts, "")
	}

	if len(edgeContents) > 0 {
		parts = append(parts, sectionRule, "KNOWLEDGE GRAPH RELATIONSHIPS (Connections)", sectionRule)
		for i, content := range edgeContents {
			parts = append(parts, fmt.Sprintf("\n[Relationship %d]", i+1), content)
			if i < len(edgeCitations) && edgeCitations[i].Title != "" {
				parts = append(parts, fmt.Sprintf("  Source: %s", edgeCitations[i].Title))
			}
		}
		parts = append(parts, "")
	}

	if len(webContents) > 0 {
		parts = append(parts, sectionRule, "WEB SEARCH RESULTS (Recent Information)", sectionRule)
		for i, content := range webContents {
			parts = append(parts, fmt.Sprintf("\n[Web Result %d]", i+1), content)
			if i < len(webCitations) {
				if webCitations[i].Title != "" {
					parts = append(parts, fmt.Sprintf("  Title: %s", webCitations[i].Title))
				}
				if webCitations[i].URL != "" {
					parts = append(parts, fmt.Sprintf("  URL: %s", webCitations[i].URL))
				}
			}
		}
		parts = append(parts, "")
	}

	if len(parts) == 0 {
		return noContextFound
	}
	return strings.Join(parts, "\n")
}

// formatStateContext renders the context block for the current evidence.
func formatStateContext(s State) string {
	return FormatContext(
		s.NodeContents, s.EdgeContents, s.WebContents,
		s.NodeCitations, s.EdgeCitations, s.WebCitations,
	)
}

// mergeCitations builds the deduplicated citation union in node, edge,
// web order. Entries with neither title nor URL are dropped.
func mergeCitations(groups ...[]Citation) []Citation {
	var merged []Citation
	seen := make(map[Citation]bool)
	for _, group := range groups {
		for _, c := range group {
			if c.Title == "" && c.URL == "" {
				continue
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged
}
