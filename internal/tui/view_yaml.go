package tui

import (
	"fmt"
	"regexp"
	"strings"
)

var reYAMLKey = regexp.MustCompile(`^(\s*(?:- )?)([\w./-]+):`)

type yamlViewState struct {
	scroller
	resourceName string
	resourceType string
	content      string
}

func (ys *yamlViewState) setContent(content string) {
	ys.content = content
	ys.setLines(strings.Split(content, "\n"))
}

func renderYAMLView(ys *yamlViewState, width, viewHeight int) string {
	if ys.content == "" {
		return "  Pas de YAML disponible\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("  YAML: %s/%s [%d lignes]", ys.resourceType, ys.resourceName, len(ys.lines))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	end := min(ys.offset+viewHeight, len(ys.lines))
	for i := ys.offset; i < end; i++ {
		line := ys.lines[i]
		if len(line) > width-2 {
			line = line[:width-2]
		}
		b.WriteString("  ")
		b.WriteString(colorizeYAMLLine(line))
		b.WriteString("\n")
	}

	return b.String()
}

// colorizeYAMLLine highlights the mapping key. Truncation happens before
// styling so escape sequences are never cut mid-way.
func colorizeYAMLLine(line string) string {
	m := reYAMLKey.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	rest := line[len(m[0]):]
	return m[1] + sectionTitleStyle.Render(m[2]) + ":" + rest
}

func yamlHelpKeys() string {
	return "pgup/pgdn:scroll  G:fin  esc:retour"
}
