package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	reTimestamp  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[\.\d]*`)
	reLogLevel   = regexp.MustCompile(`\b(INFO|WARN|WARNING|ERROR|FATAL|SEVERE|DEBUG|TRACE)\b`)
	reHTTPMethod = regexp.MustCompile(`\b(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\b`)
	reHTTPStatus = regexp.MustCompile(`\b([2-5]\d{2})\b`)
)

// Styles are built once; colorizeLine runs on every visible line each frame.
var (
	tsStyle = lipgloss.NewStyle().Foreground(colorMuted)

	levelStyles = map[string]lipgloss.Style{
		"INFO":    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		"WARN":    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		"WARNING": lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		"ERROR":   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		"FATAL":   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		"SEVERE":  lipgloss.NewStyle().Foreground(colorError).Bold(true),
		"DEBUG":   lipgloss.NewStyle().Foreground(colorMuted),
		"TRACE":   lipgloss.NewStyle().Foreground(colorMuted),
	}

	methodStyles = map[string]lipgloss.Style{
		"GET":     lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		"POST":    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		"PUT":     lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		"PATCH":   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		"DELETE":  lipgloss.NewStyle().Foreground(colorError).Bold(true),
		"HEAD":    lipgloss.NewStyle().Foreground(colorMuted).Bold(true),
		"OPTIONS": lipgloss.NewStyle().Foreground(colorMuted).Bold(true),
	}

	statusRangeStyles = map[byte]lipgloss.Style{
		'2': lipgloss.NewStyle().Foreground(colorSuccess),
		'3': lipgloss.NewStyle().Foreground(colorPrimary),
		'4': lipgloss.NewStyle().Foreground(colorWarning),
		'5': lipgloss.NewStyle().Foreground(colorError),
	}
)

// logState holds the log viewer: the fetched content split into lines and a
// scroll offset over them. previous selects the prior container instance.
type logState struct {
	scroller
	namespace     string
	podName       string
	containerName string
	content       string
	previous      bool
	wrap          bool
}

func (ls *logState) setContent(content string) {
	ls.content = content
	ls.setLines(strings.Split(content, "\n"))
}

// wrapLine splits a logical line into visual chunks of at most width bytes.
func wrapLine(line string, width int) []string {
	if len(line) <= width {
		return []string{line}
	}
	chunks := make([]string, 0, len(line)/width+1)
	for len(line) > width {
		chunks = append(chunks, line[:width])
		line = line[width:]
	}
	return append(chunks, line)
}

func (ls *logState) header() string {
	target := ls.podName
	if ls.containerName != "" {
		target = ls.podName + "/" + ls.containerName
	}
	mode := "current"
	if ls.previous {
		mode = "previous"
	}
	return fmt.Sprintf("  Logs: %s (%s) [%d lignes]", target, mode, len(ls.lines))
}

func renderLogs(ls *logState, width, viewHeight int) string {
	if ls.content == "" {
		return "  Pas de logs disponibles\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(ls.header()))
	b.WriteString("\n")

	usable := max(width-2, 1) // "  " prefix
	rendered := 0
	for i := ls.offset; i < len(ls.lines) && rendered < viewHeight; i++ {
		line := ls.lines[i]
		if ls.wrap {
			for _, chunk := range wrapLine(line, usable) {
				if rendered >= viewHeight {
					break
				}
				b.WriteString("  ")
				b.WriteString(colorizeLine(chunk))
				b.WriteString("\n")
				rendered++
			}
			continue
		}
		if len(line) > usable {
			line = line[:usable-1] + "…"
		}
		b.WriteString("  ")
		b.WriteString(colorizeLine(line))
		b.WriteString("\n")
		rendered++
	}

	return b.String()
}

// colorizeLine highlights timestamps, log levels, HTTP methods and status
// codes. Purely cosmetic: the line text is never altered, only wrapped in
// escape sequences.
func colorizeLine(line string) string {
	if line == "" {
		return ""
	}
	line = reTimestamp.ReplaceAllStringFunc(line, func(m string) string {
		return tsStyle.Render(m)
	})
	line = reLogLevel.ReplaceAllStringFunc(line, func(m string) string {
		return levelStyles[m].Render(m)
	})
	line = reHTTPMethod.ReplaceAllStringFunc(line, func(m string) string {
		return methodStyles[m].Render(m)
	})
	line = reHTTPStatus.ReplaceAllStringFunc(line, func(m string) string {
		return statusRangeStyles[m[0]].Render(m)
	})
	return line
}

func logHelpKeys(previous, wrap bool) string {
	wrapLabel := "w:wrap"
	if wrap {
		wrapLabel = "w:nowrap"
	}
	if previous {
		return fmt.Sprintf("pgup/pgdn:scroll  G:fin  %s  p:logs courants  esc:retour", wrapLabel)
	}
	return fmt.Sprintf("pgup/pgdn:scroll  G:fin  %s  p:logs précédents  esc:retour", wrapLabel)
}
