package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestLogStateScrolling(t *testing.T) {
	ls := &logState{}
	content := strings.Repeat("ligne\n", 99) + "ligne"
	ls.setContent(content)

	if len(ls.lines) != 100 {
		t.Fatalf("lines = %d, want 100", len(ls.lines))
	}
	if ls.offset != 0 {
		t.Error("setContent should reset the offset")
	}

	ls.scrollDown(10, 20)
	if ls.offset != 10 {
		t.Errorf("offset = %d, want 10", ls.offset)
	}

	// Cannot scroll past the end
	ls.scrollDown(1000, 20)
	if ls.offset != 80 {
		t.Errorf("offset = %d, want 80 (clamped)", ls.offset)
	}

	ls.scrollUp(1000)
	if ls.offset != 0 {
		t.Errorf("offset = %d, want 0 (clamped)", ls.offset)
	}

	ls.jumpToBottom(20)
	if ls.offset != 80 {
		t.Errorf("jumpToBottom offset = %d, want 80", ls.offset)
	}
}

func TestRenderLogsEmpty(t *testing.T) {
	ls := &logState{}
	out := renderLogs(ls, 80, 20)
	if !strings.Contains(out, "Pas de logs") {
		t.Errorf("empty logs message missing: %q", out)
	}
}

func TestRenderLogsShowsHeader(t *testing.T) {
	ls := &logState{podName: "web-1", namespace: "default", containerName: "app"}
	ls.setContent("hello\nworld")

	out := renderLogs(ls, 80, 20)
	if !strings.Contains(out, "web-1/app") {
		t.Errorf("header missing pod/container: %q", out)
	}
	if !strings.Contains(out, "2 lignes") {
		t.Errorf("header missing line count: %q", out)
	}
}

func TestRenderLogsTruncatesLongLines(t *testing.T) {
	ls := &logState{podName: "web-1"}
	ls.setContent(strings.Repeat("x", 500))

	out := renderLogs(ls, 40, 20)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 200 { // styled header can be long; raw content must be cropped
			t.Errorf("line too long (%d chars)", len(line))
		}
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated line should end with ellipsis")
	}
}

func TestRenderLogsWrapMode(t *testing.T) {
	ls := &logState{podName: "web-1", wrap: true}
	ls.setContent(strings.Repeat("x", 100))

	out := renderLogs(ls, 42, 20)
	if strings.Contains(out, "…") {
		t.Error("wrap mode should not truncate")
	}
	// 100 chars at 40 usable columns -> 3 visual lines
	count := strings.Count(out, "x")
	if count != 100 {
		t.Errorf("wrap mode dropped content: %d of 100 chars", count)
	}
}

func TestColorizeLinePassesPlainText(t *testing.T) {
	line := "rien de spécial ici"
	if got := colorizeLine(line); got != line {
		t.Errorf("plain text should be unchanged, got %q", got)
	}
}

func TestColorizeLineHighlightsLevels(t *testing.T) {
	// go test runs without a TTY, so lipgloss picks the no-color Ascii
	// profile and Render is a no-op. Force a color-capable profile for
	// this test only so the styling assertion can observe escapes.
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(old)

	got := colorizeLine("2024-01-15T10:00:00 ERROR something broke")
	if got == "2024-01-15T10:00:00 ERROR something broke" {
		t.Error("timestamps and levels should be styled")
	}
	if !strings.Contains(got, "something broke") {
		t.Error("message text must survive colorization")
	}
}
