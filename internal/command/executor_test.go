package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskmate-go/internal/storage"
	"github.com/nibzard/taskmate-go/internal/task"
)

type recordingStore struct {
	saves int
	err   error
}

func (s *recordingStore) Save(*task.List) error {
	s.saves++
	return s.err
}

func run(t *testing.T, e *Executor, line string) (Outcome, error) {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q): %v", line, err)
	}
	return e.Execute(cmd)
}

func mustRun(t *testing.T, e *Executor, line string) Outcome {
	t.Helper()
	out, err := run(t, e, line)
	if err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
	return out
}

func newFileExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	store := storage.New(path, nil)
	res, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewExecutor(res.List, store, nil), path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func TestExecuteAddPersists(t *testing.T) {
	tests := []struct {
		line        string
		wantDisplay string
		wantStored  string
	}{
		{"todo borrow book", "[T][ ] borrow book", "T | 0 | borrow book"},
		{"deadline return book /by 2025-09-09 1900", "[D][ ] return book (by: 2025-09-09 1900)", "D | 0 | return book | 2025-09-09 1900"},
		{
			"event project meeting /from 2025-10-10 1000 /to 2025-11-10 1000",
			"[E][ ] project meeting (from: 2025-10-10 1000 to: 2025-11-10 1000)",
			"E | 0 | project meeting | 2025-10-10 1000 - 2025-11-10 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, path := newFileExecutor(t)
			out := mustRun(t, e, tt.line)

			want := "Got it. I've added this task:\n  " + tt.wantDisplay + "\nNow you have 1 task in the list."
			if out.Text != want {
				t.Errorf("text = %q, want %q", out.Text, want)
			}
			if e.List().Len() != 1 {
				t.Fatalf("list length = %d, want 1", e.List().Len())
			}
			lines := readLines(t, path)
			if len(lines) != 1 || lines[0] != tt.wantStored {
				t.Errorf("file lines = %q, want [%q]", lines, tt.wantStored)
			}
		})
	}
}

func TestExecuteAddCount(t *testing.T) {
	e, _ := newFileExecutor(t)
	mustRun(t, e, "todo a")
	out := mustRun(t, e, "todo b")
	if !strings.HasSuffix(out.Text, "Now you have 2 tasks in the list.") {
		t.Errorf("text = %q, want plural count", out.Text)
	}
}

func TestExecuteValidationLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		line    string
		wantErr error
	}{
		{"todo", ErrMissingUsageArgument},
		{"deadline return book", ErrInvalidDelimiter},
		{"deadline /by 2025-09-09 1900", ErrEmptyField},
		{"deadline task /by tomorrow", ErrInvalidDateFormat},
		{"event party /from 2025-10-10 1000", ErrInvalidDelimiter},
		{"mark 5", ErrInvalidIndex},
		{"mark 0", ErrInvalidIndex},
		{"unmark -1", ErrInvalidIndex},
		{"delete 9", ErrInvalidIndex},
		{"delete x", ErrInvalidIndex},
		{"mark", ErrMissingUsageArgument},
		{"find", ErrMissingArgument},
		{"todo buy milk | eggs", ErrInvalidDelimiter},
		{"todo trailing |", ErrInvalidDelimiter},
		{"deadline a | b /by 2025-09-09 1900", ErrInvalidDelimiter},
		{"event x | y /from 2025-10-10 1000 /to 2025-10-10 1200", ErrInvalidDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, path := newFileExecutor(t)
			mustRun(t, e, "todo keep me")
			before := readLines(t, path)

			_, err := run(t, e, tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var cmdErr *Error
			if !errors.As(err, &cmdErr) || cmdErr.Msg == "" {
				t.Errorf("error %v should be a *Error with a user message", err)
			}
			if e.List().Len() != 1 {
				t.Errorf("list length = %d, want 1", e.List().Len())
			}
			after := readLines(t, path)
			if strings.Join(after, "\n") != strings.Join(before, "\n") {
				t.Errorf("file changed: %q -> %q", before, after)
			}
		})
	}
}

func TestExecuteInvalidIndexMessage(t *testing.T) {
	e, _ := newFileExecutor(t)
	mustRun(t, e, "todo one")
	_, err := run(t, e, "mark 3")
	if err == nil || err.Error() != "Invalid task number! You only have 1 task." {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteMarkUnmark(t *testing.T) {
	e, path := newFileExecutor(t)
	mustRun(t, e, "todo read book")

	out := mustRun(t, e, "mark 1")
	if out.Text != "Nice! I've marked this task as done:\n  [T][X] read book" {
		t.Errorf("mark text = %q", out.Text)
	}
	if got := readLines(t, path); got[0] != "T | 1 | read book" {
		t.Errorf("after mark file = %q", got)
	}

	out = mustRun(t, e, "unmark 1")
	if out.Text != "OK, I've marked this task as not done yet:\n  [T][ ] read book" {
		t.Errorf("unmark text = %q", out.Text)
	}
	if got := readLines(t, path); got[0] != "T | 0 | read book" {
		t.Errorf("after unmark file = %q", got)
	}
}

func TestExecuteMarkAlreadyInState(t *testing.T) {
	store := &recordingStore{}
	first, _ := task.NewToDo("done already")
	first.MarkDone()
	second, _ := task.NewToDo("still open")
	e := NewExecutor(task.NewList(first, second), store, nil)

	out := mustRun(t, e, "mark 1")
	if !strings.HasPrefix(out.Text, "This task is already marked as done") {
		t.Errorf("mark text = %q", out.Text)
	}
	out = mustRun(t, e, "unmark 2")
	if !strings.HasPrefix(out.Text, "This task is already marked as not done") {
		t.Errorf("unmark text = %q", out.Text)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0 for no-op marks", store.saves)
	}
}

func TestExecuteDeleteKeepsOrder(t *testing.T) {
	e, path := newFileExecutor(t)
	mustRun(t, e, "todo a")
	mustRun(t, e, "todo b")
	mustRun(t, e, "todo c")

	out := mustRun(t, e, "delete 2")
	want := "Noted. I've removed this task:\n  [T][ ] b\nNow you have 2 tasks in the list."
	if out.Text != want {
		t.Errorf("text = %q, want %q", out.Text, want)
	}

	got := readLines(t, path)
	wantLines := []string{"T | 0 | a", "T | 0 | c"}
	if strings.Join(got, "\n") != strings.Join(wantLines, "\n") {
		t.Errorf("file = %q, want %q", got, wantLines)
	}
	second, err := e.List().Get(1)
	if err != nil || second.Description() != "c" {
		t.Errorf("Get(1) = %v, %v; want c", second, err)
	}
}

func TestExecuteEmptyList(t *testing.T) {
	for _, line := range []string{"list", "delete 1", "find book"} {
		t.Run(line, func(t *testing.T) {
			e := NewExecutor(task.NewList(), &recordingStore{}, nil)
			_, err := run(t, e, line)
			if !errors.Is(err, ErrEmptyList) {
				t.Errorf("error = %v, want ErrEmptyList", err)
			}
		})
	}
}

func TestExecuteList(t *testing.T) {
	e, _ := newFileExecutor(t)
	mustRun(t, e, "todo a")
	mustRun(t, e, "deadline b /by 2025-01-02 0300")

	out := mustRun(t, e, "LIST")
	want := "Here are the tasks in your list:\n1. [T][ ] a\n2. [D][ ] b (by: 2025-01-02 0300)"
	if out.Text != want {
		t.Errorf("text = %q, want %q", out.Text, want)
	}
}

func TestExecuteFind(t *testing.T) {
	store := &recordingStore{}
	e := NewExecutor(task.NewList(), store, nil)
	mustRun(t, e, "todo read book")
	mustRun(t, e, "todo buy milk")
	mustRun(t, e, "deadline return book /by 2025-09-09 1900")
	saves := store.saves

	out := mustRun(t, e, "find book")
	want := "Here are the matching tasks in your list:\n" +
		"1. [T][ ] read book\n" +
		"3. [D][ ] return book (by: 2025-09-09 1900)"
	if out.Text != want {
		t.Errorf("text = %q, want %q", out.Text, want)
	}

	out = mustRun(t, e, "find zebra")
	if out.Text != `No tasks match "zebra".` {
		t.Errorf("no-match text = %q", out.Text)
	}

	if e.List().Len() != 3 || store.saves != saves {
		t.Errorf("find mutated state: len=%d saves=%d", e.List().Len(), store.saves)
	}
}

func TestExecuteSaveFailureKeepsChange(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	e := NewExecutor(task.NewList(), store, nil)

	out, err := run(t, e, "todo survive")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if e.List().Len() != 1 {
		t.Errorf("list length = %d, want 1", e.List().Len())
	}
	if !strings.Contains(out.Text, "Warning: your tasks could not be saved: disk full") {
		t.Errorf("text = %q, want save warning", out.Text)
	}
}

func TestExecuteHelpByeUnknown(t *testing.T) {
	e := NewExecutor(task.NewList(), &recordingStore{}, nil)

	out := mustRun(t, e, "help")
	if !strings.Contains(out.Text, "To add todos") || !strings.Contains(out.Text, "To exit: bye") {
		t.Errorf("help text = %q", out.Text)
	}
	if out.Exit {
		t.Error("help should not exit")
	}

	out = mustRun(t, e, "bye")
	if out.Text != GoodbyeMessage || !out.Exit {
		t.Errorf("bye = %+v", out)
	}

	out = mustRun(t, e, "dance")
	if !strings.HasPrefix(out.Text, `Invalid command "dance"!`) || out.Exit {
		t.Errorf("unknown = %+v", out)
	}
	for _, kw := range Keywords {
		if !strings.Contains(out.Text, kw) {
			t.Errorf("unknown command text missing keyword %q", kw)
		}
	}
}
