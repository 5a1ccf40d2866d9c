// Package session connects a task store to the command executor and exposes
// the single text-in, text-out entry point used by every front end.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmate-go/internal/command"
	"github.com/nibzard/taskmate-go/internal/logging"
	"github.com/nibzard/taskmate-go/internal/storage"
	"github.com/nibzard/taskmate-go/internal/task"
)

// Store loads and saves the task list. *storage.Storage implements it.
type Store interface {
	Load() (*storage.LoadResult, error)
	Save(list *task.List) error
}

// Options configures a Session.
type Options struct {
	// Name is the assistant name used in the greeting.
	Name   string
	Logger *log.Logger
}

// Session owns the in-memory task list for one run of the program.
type Session struct {
	name     string
	logger   *log.Logger
	executor *command.Executor
	loadNote string
	exited   bool
}

// New loads the task list from store. Load problems never fail New: a
// file-system error starts an empty list, and corrupted lines are skipped.
// Both are reported in the startup text.
func New(store Store, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	name := opts.Name
	if name == "" {
		name = "Taskmate"
	}

	res, err := store.Load()
	list := task.NewList()
	if res != nil && res.List != nil {
		list = res.List
	}

	s := &Session{
		name:     name,
		logger:   logger,
		executor: command.NewExecutor(list, store, logger),
		loadNote: loadNote(res, err),
	}
	if err != nil {
		logger.Error("Could not load tasks", "err", err)
	}
	logger.Info("Session started", "tasks", list.Len())
	return s
}

func loadNote(res *storage.LoadResult, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("Warning: could not load your tasks (%v). Starting with an empty list.", err)
	case res == nil:
		return ""
	case res.Created:
		return "No saved tasks found. Starting a new task list."
	case len(res.Corrupted) == 1:
		return "Warning: skipped 1 corrupted line in the task file."
	case len(res.Corrupted) > 1:
		return fmt.Sprintf("Warning: skipped %d corrupted lines in the task file.", len(res.Corrupted))
	}
	return ""
}

// Startup returns the greeting followed by any load report and the current
// task list.
func (s *Session) Startup() string {
	parts := []string{command.Greeting(s.name)}
	if s.loadNote != "" {
		parts = append(parts, s.loadNote)
	}
	if list := s.executor.List(); list.IsEmpty() {
		parts = append(parts, "Your task list is empty.")
	} else {
		parts = append(parts, "Here are the tasks in your list:\n"+command.FormatList(list.All()))
	}
	return strings.Join(parts, "\n")
}

// Submit runs one input line and returns the text to show. exit is true
// after bye; the caller should then release its input.
func (s *Session) Submit(line string) (reply string, exit bool) {
	cmd, err := command.Parse(line)
	if err != nil {
		return s.errorText(err), false
	}

	out, err := s.executor.Execute(cmd)
	if err != nil {
		return s.errorText(err), false
	}
	if out.Exit {
		s.exited = true
		s.logger.Info("Session ended")
	}
	return out.Text, out.Exit
}

// Exited reports whether bye has been submitted.
func (s *Session) Exited() bool {
	return s.exited
}

// Tasks returns a snapshot of the current tasks.
func (s *Session) Tasks() []task.Task {
	return s.executor.List().All()
}

func (s *Session) errorText(err error) string {
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		s.logger.Debug("Command rejected", "kind", cmdErr.Kind, "msg", cmdErr.Msg)
		return cmdErr.Error()
	}
	s.logger.Error("Command failed", "err", err)
	return "Something went wrong: " + err.Error()
}

// Run prints the startup text, then reads in line by line, printing each
// reply to out. It stops on bye, end of input or ctx cancellation, and
// closes in exactly once before returning.
func (s *Session) Run(ctx context.Context, in io.ReadCloser, out io.Writer) error {
	var closeOnce sync.Once
	closeInput := func() {
		closeOnce.Do(func() {
			if err := in.Close(); err != nil {
				s.logger.Debug("Closing input failed", "err", err)
			}
		})
	}
	defer closeInput()

	if _, err := fmt.Fprintln(out, s.Startup()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		// No line length limit: a pasted line of any size is one command.
		br := bufio.NewReader(in)
		for {
			raw, err := br.ReadString('\n')
			if raw != "" {
				line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
				select {
				case lines <- line:
				case <-stop:
					readErr <- nil
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				s.logger.Info("Input closed")
				return nil
			}
			reply, exit := s.Submit(line)
			if _, err := fmt.Fprintln(out, reply); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if exit {
				return nil
			}
		}
	}
}
