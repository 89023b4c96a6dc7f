package tui

import (
	"fmt"
	"strings"

	"github.com/jclamy/kubedeck/internal/domain"
)

// renderContainerSelector lists the containers of a pod before opening its
// logs, with a readiness marker next to each name.
func renderContainerSelector(pod domain.PodRecord, choices []string, cursor int) string {
	ready := make(map[string]bool, len(pod.Containers))
	for _, c := range pod.Containers {
		ready[c.Name] = c.Ready
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  Logs de %s : choisir un container\n\n", pod.Name)
	for i, name := range choices {
		marker := "✗"
		if ready[name] {
			marker = "✓"
		}
		line := fmt.Sprintf("%s %s", marker, name)
		if i == cursor {
			fmt.Fprintf(&b, "  > %s\n", selectedStyle.Render(line))
		} else {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString("\n  j/k:nav  enter:logs  esc:annuler\n")
	return b.String()
}
