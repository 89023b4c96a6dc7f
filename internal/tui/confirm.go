package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmMode int

const (
	confirmNone confirmMode = iota
	confirmSimple // y/N prompt
	confirmProd   // type the full resource name
)

// confirmState is the modal confirmation dialog. While active it captures
// every key, so a stray keypress can never reach the view underneath.
type confirmState struct {
	mode         confirmMode
	action       string
	resourceName string
	namespace    string
	input        textinput.Model
	callback     func() tea.Msg
}

func newConfirmState() confirmState {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 50
	return confirmState{mode: confirmNone, input: ti}
}

func (cs *confirmState) activate(action, resourceName, namespace string, isProd bool, callback func() tea.Msg) {
	cs.action = action
	cs.resourceName = resourceName
	cs.namespace = namespace
	cs.callback = callback
	if !isProd {
		cs.mode = confirmSimple
		return
	}
	cs.mode = confirmProd
	cs.input.Placeholder = resourceName
	cs.input.SetValue("")
	cs.input.Focus()
}

func (cs *confirmState) reset() {
	ti := cs.input
	ti.SetValue("")
	ti.Blur()
	*cs = confirmState{mode: confirmNone, input: ti}
}

func (cs *confirmState) isActive() bool {
	return cs.mode != confirmNone
}

// accept fires the stored callback and closes the dialog.
func (cs *confirmState) accept() tea.Cmd {
	cb := cs.callback
	cs.reset()
	if cb == nil {
		return nil
	}
	return cb
}

// update consumes a key press. The second return value reports whether the
// dialog handled the key; false means the dialog is not active.
func (cs *confirmState) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch cs.mode {
	case confirmSimple:
		return cs.updateSimple(msg), true
	case confirmProd:
		return cs.updateProd(msg), true
	}
	return nil, false
}

func (cs *confirmState) updateSimple(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		return cs.accept()
	case "n", "N", "esc":
		cs.reset()
	}
	return nil
}

func (cs *confirmState) updateProd(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		cs.reset()
		return nil
	case "enter":
		// Wrong name keeps the dialog open.
		if strings.TrimSpace(cs.input.Value()) == cs.resourceName {
			return cs.accept()
		}
		return nil
	}
	var cmd tea.Cmd
	cs.input, cmd = cs.input.Update(msg)
	return cmd
}

func (cs *confirmState) view(width int) string {
	switch cs.mode {
	case confirmSimple:
		return fmt.Sprintf("\n  %s %s ? [y/N] ", cs.action, cs.resourceName)
	case confirmProd:
		var b strings.Builder
		b.WriteString("  NAMESPACE PRODUCTION\n\n")
		fmt.Fprintf(&b, "  Action : %s\n", cs.action)
		fmt.Fprintf(&b, "  Cible  : %s\n", cs.resourceName)
		fmt.Fprintf(&b, "  NS     : %s\n\n", cs.namespace)
		fmt.Fprintf(&b, "  Tapez %q pour confirmer :\n", cs.resourceName)
		fmt.Fprintf(&b, "  > %s\n\n", cs.input.View())
		b.WriteString("  [Esc] Annuler")
		return "\n" + bannerProdStyle.Width(min(width-4, 60)).Render(b.String()) + "\n"
	}
	return ""
}
