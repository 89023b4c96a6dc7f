package tui

import (
	"fmt"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

// Secret values are never displayed; the list shows type and key count
// only.
func renderSecretList(secrets []domain.SecretRecord, cursor, width, maxVisible int, st SortState) string {
	if len(secrets) == 0 {
		return "  Aucun secret dans ce scope\n"
	}

	var b strings.Builder

	name := SortIndicator("NAME", st)
	typ := SortIndicator("TYPE", st)
	wide := width >= 100
	if wide {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-40s %-28s %-6s %s",
			"NAMESPACE", name, typ, "KEYS", SortIndicator("AGE", st))))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-35s %-25s %s", name, typ, "KEYS")))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(secrets) && i < start+maxVisible; i++ {
		s := secrets[i]
		var line string
		if wide {
			line = fmt.Sprintf("  %-20s %-40s %-28s %-6d %s",
				truncate(s.Namespace, 19),
				truncate(s.Name, 39),
				truncate(s.Type, 27),
				s.Keys,
				s.Age)
		} else {
			line = fmt.Sprintf("  %-35s %-25s %d",
				truncate(s.Name, 34),
				truncate(s.Type, 24),
				s.Keys)
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

func secretHelpKeys() string {
	return "j/k:nav  g/G:début/fin  t:tri  /:filtre  r:refresh  q:quit"
}
