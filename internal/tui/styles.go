package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Primary is the Kubernetes brand blue.
var (
	colorPrimary = lipgloss.Color("#326CE5")
	colorAccent  = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#FFBD2E")
	colorError   = lipgloss.Color("#FF6B6B")
	colorMuted   = lipgloss.Color("#626262")
	colorProdBg  = lipgloss.Color("#8B0000")
	colorWarnBg  = lipgloss.Color("#CC7700")

	colorBarBg = lipgloss.Color("#333333")
	colorWhite = lipgloss.Color("#FFFFFF")
)

// Chrome: title bar, tabs, status bar.
var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	contextStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	namespaceStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorMuted)
	liveStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorBarBg).
			Foreground(colorWhite).
			PaddingLeft(1).
			PaddingRight(1)
)

// Lists and detail sections.
var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorMuted).Underline(true)
	selectedStyle     = lipgloss.NewStyle().Bold(true).Background(colorBarBg)
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// Notifications, banners and the connection error overlay.
var (
	toastSuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	toastErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	bannerWarnStyle = lipgloss.NewStyle().
			Background(colorWarnBg).
			Foreground(colorWhite).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	bannerProdStyle = lipgloss.NewStyle().
			Background(colorProdBg).
			Foreground(colorWhite).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(1, 2)

	errorScreenStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true).
				PaddingLeft(2).
				PaddingTop(1)
)

var (
	statusOKStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	statusWarnStyle = lipgloss.NewStyle().Foreground(colorWarning)
	statusErrStyle  = lipgloss.NewStyle().Foreground(colorError)
	statusDimStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

var statusColors = map[string]lipgloss.Style{
	"Running":               statusOKStyle,
	"Active":                statusOKStyle,
	"Succeeded":             statusOKStyle,
	"Completed":             statusOKStyle,
	"Pending":               statusWarnStyle,
	"ContainerCreating":     statusWarnStyle,
	"Terminating":           statusWarnStyle,
	"Failed":                statusErrStyle,
	"Error":                 statusErrStyle,
	"CrashLoopBackOff":      statusErrStyle,
	"ImagePullBackOff":      statusErrStyle,
	"ErrImagePull":          statusErrStyle,
	"OOMKilled":             statusErrStyle,
	"Init:Error":            statusErrStyle,
	"Init:CrashLoopBackOff": statusErrStyle,
}

func colorizeStatus(status string) string {
	if st, ok := statusColors[status]; ok {
		return st.Render(status)
	}
	return statusDimStyle.Render(status)
}
