package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jclamy/kubedeck/internal/domain"
)

func renderDeploymentList(deps []domain.DeploymentRecord, cursor, width, maxVisible int, st SortState) string {
	if len(deps) == 0 {
		return "  Aucun deployment dans ce scope\n"
	}

	var b strings.Builder

	name := SortIndicator("NAME", st)
	ready := SortIndicator("READY", st)
	age := SortIndicator("AGE", st)
	switch {
	case width >= 120:
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-38s %-10s %-10s %-8s %s",
			"NAMESPACE", name, ready, "AVAIL", age, "IMAGE")))
	case width >= 80:
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-35s %-10s %-10s %s",
			name, ready, "AVAIL", age)))
	default:
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-30s %-10s %s", name, ready, age)))
	}
	b.WriteString("\n")

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(deps) && i < start+maxVisible; i++ {
		d := deps[i]
		readyColor := colorizeReady(d.Ready)

		var line string
		switch {
		case width >= 120:
			line = fmt.Sprintf("  %-20s %-38s %-10s %-10d %-8s %s",
				truncate(d.Namespace, 19), truncate(d.Name, 37), readyColor, d.Available, d.Age,
				truncate(d.Image, width-95))
		case width >= 80:
			line = fmt.Sprintf("  %-35s %-10s %-10d %s",
				truncate(d.Name, 34), readyColor, d.Available, d.Age)
		default:
			line = fmt.Sprintf("  %-30s %-10s %s",
				truncate(d.Name, 29), readyColor, d.Age)
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

func colorizeReady(ready string) string {
	var readyN, totalN int
	fmt.Sscanf(ready, "%d/%d", &readyN, &totalN)
	if totalN > 0 && readyN == totalN {
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(ready)
	}
	if readyN == 0 {
		return lipgloss.NewStyle().Foreground(colorError).Render(ready)
	}
	return lipgloss.NewStyle().Foreground(colorWarning).Render(ready)
}

func deploymentHelpKeys() string {
	return "j/k:nav  +/-:scale  s:scale set  t:tri  /:filtre  r:refresh  q:quit"
}
