package tui

import (
	"fmt"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

func renderPodList(pods []domain.PodRecord, cursor, width, maxVisible int, st SortState) string {
	if len(pods) == 0 {
		return "  Aucun pod dans ce scope\n"
	}

	var b strings.Builder

	// Responsive columns; the active sort column carries its indicator.
	wide := width >= 110
	if wide {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-42s %-18s %-7s %-10s %s",
			"NAMESPACE",
			SortIndicator("NAME", st),
			SortIndicator("STATUS", st),
			"READY",
			SortIndicator("RESTARTS", st),
			SortIndicator("AGE", st))))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-35s %-18s %s",
			SortIndicator("NAME", st),
			SortIndicator("STATUS", st),
			"READY")))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(pods) && i < start+maxVisible; i++ {
		p := pods[i]
		var line string
		if wide {
			line = fmt.Sprintf("  %-20s %-42s %-18s %-7s %-10d %s",
				truncate(p.Namespace, 19),
				truncate(p.Name, 41),
				colorizeStatus(p.Status),
				p.Ready,
				p.Restarts,
				p.Age)
		} else {
			line = fmt.Sprintf("  %-35s %-18s %s",
				truncate(p.Name, 34),
				colorizeStatus(p.Status),
				p.Ready)
		}

		if i == cursor {
			b.WriteString(selectedStyle.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func podHelpKeys() string {
	return "j/k:nav  enter:détail  l:logs  d:suppr  y:yaml  t:tri  /:filtre  r:refresh  q:quit"
}
