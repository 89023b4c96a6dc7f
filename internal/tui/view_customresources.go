package tui

import (
	"fmt"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

func renderCustomResourceList(resources []domain.CustomResourceRecord, cursor, width, maxVisible, configured int) string {
	if configured == 0 {
		return "  Aucune ressource configurée.\n  Ajoutez des entrées custom_resources dans la configuration.\n"
	}
	if len(resources) == 0 {
		return "  Aucune instance dans ce scope\n"
	}

	var b strings.Builder

	if width >= 100 {
		header := fmt.Sprintf("  %-18s %-20s %-36s %-16s %s", "KIND", "NAMESPACE", "NAME", "STATUS", "AGE")
		b.WriteString(headerStyle.Render(header))
	} else {
		header := fmt.Sprintf("  %-16s %-32s %s", "KIND", "NAME", "STATUS")
		b.WriteString(headerStyle.Render(header))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(resources) && i < start+maxVisible; i++ {
		r := resources[i]
		ns := r.Namespace
		if ns == "" {
			ns = "-" // cluster-scoped
		}
		var line string
		if width >= 100 {
			line = fmt.Sprintf("  %-18s %-20s %-36s %-16s %s",
				truncate(r.Kind, 17),
				truncate(ns, 19),
				truncate(r.Name, 35),
				colorizeStatus(r.Status),
				r.Age)
		} else {
			line = fmt.Sprintf("  %-16s %-32s %s",
				truncate(r.Kind, 15),
				truncate(r.Name, 31),
				colorizeStatus(r.Status))
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

func customResourceHelpKeys() string {
	return "j/k:nav  g/G:début/fin  /:filtre  r:refresh  q:quit"
}
