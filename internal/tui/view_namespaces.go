package tui

import (
	"fmt"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

// renderNamespaceList draws the scope-selection list. Namespaces matching a
// production pattern carry a PROD badge, the active scope a > marker.
func renderNamespaceList(namespaces []domain.NamespaceRecord, cursor, width, maxVisible int, activeScope string, isProd func(string) bool) string {
	if len(namespaces) == 0 {
		return "  Aucun namespace accessible\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-40s %-12s %-6s %s", "NAME", "STATUS", "AGE", "")))
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(namespaces) && i < start+maxVisible; i++ {
		ns := namespaces[i]
		marker := "  "
		if ns.Name == activeScope {
			marker = "> "
		}
		badge := ""
		if isProd != nil && isProd(ns.Name) {
			badge = bannerProdStyle.Render(" PROD ")
		}
		line := fmt.Sprintf("%s%-40s %-12s %-6s %s",
			marker, truncate(ns.Name, 39), colorizeStatus(ns.Status), ns.Age, badge)

		if i == cursor {
			b.WriteString(selectedStyle.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func namespaceHelpKeys() string {
	return "j/k:nav  g/G:début/fin  enter:sélectionner  /:filtre  r:refresh  q:quit"
}
