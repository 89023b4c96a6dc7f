package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jclamy/kubedeck/internal/domain"
)

var (
	eventWarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	eventNormalStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
)

// renderDetail shows one pod: identity, containers, live metrics,
// recent events and the container environment.
func renderDetail(d podDetail, metrics domain.PodMetricsRecord, hasMetrics bool, width, maxVisible int) string {
	var b strings.Builder
	pod := d.Pod

	b.WriteString(sectionTitleStyle.Render(fmt.Sprintf("  Pod %s/%s", pod.Namespace, pod.Name)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Status: %s   Ready: %s   Restarts: %d   Age: %s   Node: %s\n",
		colorizeStatus(pod.Status), pod.Ready, pod.Restarts, pod.Age, pod.Node))

	if hasMetrics {
		b.WriteString(fmt.Sprintf("  CPU: %s   Mémoire: %s\n", metrics.CPU, metrics.Memory))
	} else {
		b.WriteString("  CPU: -   Mémoire: -  (metrics indisponibles)\n")
	}
	b.WriteString("\n")

	// Containers
	if len(pod.Containers) > 0 {
		b.WriteString(sectionTitleStyle.Render("  Containers"))
		b.WriteString("\n")
		for _, c := range pod.Containers {
			ready := "✗"
			if c.Ready {
				ready = "✓"
			}
			b.WriteString(fmt.Sprintf("    %s %-30s %s\n", ready, truncate(c.Name, 29), colorizeStatus(c.State)))
		}
		b.WriteString("\n")
	}

	// Events
	b.WriteString(sectionTitleStyle.Render("  Events"))
	b.WriteString("\n")
	if len(d.Events) == 0 {
		b.WriteString("    Aucun event récent\n")
	} else {
		shown := d.Events
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, e := range shown {
			typeStr := eventNormalStyle.Render(e.Type)
			if e.Type == "Warning" {
				typeStr = eventWarningStyle.Render(e.Type)
			}
			b.WriteString(fmt.Sprintf("    %-9s %-20s ×%-4d %-7s %s\n",
				typeStr,
				truncate(e.Reason, 19),
				e.Count,
				e.Age,
				truncate(e.Message, max(width-50, 10))))
		}
	}
	b.WriteString("\n")

	// Environment
	b.WriteString(sectionTitleStyle.Render("  Environnement"))
	b.WriteString("\n")
	if len(d.Env) == 0 {
		b.WriteString("    Aucune variable\n")
	} else {
		used := strings.Count(b.String(), "\n")
		budget := maxVisible - used - 1
		if budget < 1 {
			budget = 1
		}
		for i, e := range d.Env {
			if i >= budget {
				b.WriteString(fmt.Sprintf("    … %d autres\n", len(d.Env)-i))
				break
			}
			val := e.Value
			if e.Source != "" {
				val = lipgloss.NewStyle().Foreground(colorMuted).Render(e.Source)
			}
			b.WriteString(fmt.Sprintf("    %-18s %-30s %s\n",
				truncate(e.Container, 17),
				truncate(e.Name, 29),
				truncate(val, max(width-56, 10))))
		}
	}

	return b.String()
}

func detailHelpKeys() string {
	return "l:logs  y:yaml  d:suppr  esc:retour  q:quit"
}
