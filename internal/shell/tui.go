package shell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the two-panel text interface: an output scrollback view and a
// single-line command input, wired to the same Shell.Execute the plain
// REPL drives. Adapted from the arm_emulator debugger's multi-panel TUI,
// trimmed to the panels this simulator's shell surface needs.
type TUI struct {
	Shell *Shell

	App          *tview.Application
	OutputView   *tview.TextView
	CommandInput *tview.InputField
	Layout       *tview.Flex
}

// NewTUI builds a TUI over sh. Call Run to start the event loop.
func NewTUI(sh *Shell) *TUI {
	t := &TUI{Shell: sh, App: tview.NewApplication()}
	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetChangedFunc(func() { t.App.Draw() })
	t.OutputView.SetBorder(true).SetTitle(" rv32sim ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)

	t.Layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.OutputView, 0, 1, false).
		AddItem(t.CommandInput, 3, 0, true)

	fmt.Fprint(t.OutputView, helpText)
	return t
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := t.CommandInput.GetText()
	t.CommandInput.SetText("")
	fmt.Fprintf(t.OutputView, "> %s\n", line)
	output, quit := t.Shell.Execute(line)
	if output != "" {
		fmt.Fprint(t.OutputView, output)
	}
	if quit {
		t.App.Stop()
	}
}

// Run starts the TUI event loop; it blocks until `quit` or a fatal error.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Layout, true).SetFocus(t.CommandInput).Run()
}
