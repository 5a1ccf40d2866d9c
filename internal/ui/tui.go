// Package ui provides the windowed chat front end.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Submitter is the session surface the chat needs. *session.Session
// implements it.
type Submitter interface {
	Startup() string
	Submit(line string) (reply string, exit bool)
}

// RunChat runs the chat UI until the user leaves or ctx is done.
func RunChat(ctx context.Context, s Submitter, title string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newChatModel(s, title), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
