package command

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmate-go/internal/task"
)

// Store persists the whole task list.
type Store interface {
	Save(list *task.List) error
}

// Outcome is the result of a successful command.
type Outcome struct {
	Text string
	// Exit is set by bye; the caller should release its input and stop.
	Exit bool
}

// Executor runs commands against a task list and persists every mutation.
type Executor struct {
	tasks  *task.List
	store  Store
	logger *log.Logger
}

// NewExecutor returns an Executor operating on list and saving through store.
// A nil logger discards log output.
func NewExecutor(list *task.List, store Store, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{tasks: list, store: store, logger: logger}
}

// List returns the task list the executor operates on.
func (e *Executor) List() *task.List {
	return e.tasks
}

// Execute runs cmd. Validation failures return a *Error and leave the list
// unchanged. A failed save after a successful change keeps the change in
// memory and appends a warning to the outcome text.
func (e *Executor) Execute(cmd Command) (Outcome, error) {
	e.logger.Debug("Executing command", "name", cmd.Name, "args", len(cmd.Args)-1)

	switch cmd.Name {
	case "list":
		return e.list()
	case "find":
		return e.find(cmd)
	case "mark":
		return e.mark(cmd, true)
	case "unmark":
		return e.mark(cmd, false)
	case "delete":
		return e.delete(cmd)
	case "todo":
		desc, err := ParseTodoArgs(cmd.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return e.add(task.NewToDo(desc))
	case "deadline":
		args, err := ParseDeadlineArgs(cmd.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return e.add(task.NewDeadline(args.Description, args.By))
	case "event":
		args, err := ParseEventArgs(cmd.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return e.add(task.NewEvent(args.Description, args.From, args.To))
	case "help":
		return Outcome{Text: HelpText()}, nil
	case "bye":
		return Outcome{Text: GoodbyeMessage, Exit: true}, nil
	default:
		return Outcome{Text: invalidCommandText(cmd.Name)}, nil
	}
}

func (e *Executor) list() (Outcome, error) {
	if e.tasks.IsEmpty() {
		return Outcome{}, newError(ErrEmptyList, "Empty list! Add a task with todo, deadline or event.")
	}
	return Outcome{Text: "Here are the tasks in your list:\n" + FormatList(e.tasks.All())}, nil
}

func (e *Executor) find(cmd Command) (Outcome, error) {
	if e.tasks.IsEmpty() {
		return Outcome{}, newError(ErrEmptyList, "Empty list! Nothing to search.")
	}
	line, space := splitKeyword(cmd.Raw)
	keyword := ""
	if space >= 0 {
		keyword = strings.TrimSpace(line[space:])
	}
	if keyword == "" {
		return Outcome{}, newError(ErrMissingArgument, "Input keyword to match! Usage: find <keyword>")
	}

	matches := e.tasks.Find(keyword)
	if len(matches) == 0 {
		return Outcome{Text: fmt.Sprintf("No tasks match %q.", keyword)}, nil
	}
	return Outcome{Text: "Here are the matching tasks in your list:\n" + formatMatches(matches)}, nil
}

func (e *Executor) mark(cmd Command, done bool) (Outcome, error) {
	t, _, err := e.lookup(cmd)
	if err != nil {
		return Outcome{}, err
	}

	if t.IsDone() == done {
		state := "done"
		if !done {
			state = "not done"
		}
		return Outcome{Text: fmt.Sprintf("This task is already marked as %s:\n  %s", state, t.DisplayLine())}, nil
	}

	var text string
	if done {
		t.MarkDone()
		text = "Nice! I've marked this task as done:\n  " + t.DisplayLine()
	} else {
		t.MarkUndone()
		text = "OK, I've marked this task as not done yet:\n  " + t.DisplayLine()
	}
	return e.persist(text), nil
}

func (e *Executor) delete(cmd Command) (Outcome, error) {
	if e.tasks.IsEmpty() {
		return Outcome{}, newError(ErrEmptyList, "Empty list! Nothing can be deleted.")
	}
	_, index, err := e.lookup(cmd)
	if err != nil {
		return Outcome{}, err
	}
	removed, err := e.tasks.Remove(index)
	if err != nil {
		return Outcome{}, e.indexError(err)
	}
	return e.persist(removedText(removed, e.tasks.Len())), nil
}

func (e *Executor) add(t task.Task, err error) (Outcome, error) {
	if err != nil {
		if errors.Is(err, task.ErrEmptyDescription) {
			return Outcome{}, newError(ErrEmptyField, "Invalid usage! Task description missing.")
		}
		if errors.Is(err, task.ErrSeparatorInDescription) {
			return Outcome{}, newError(ErrInvalidDelimiter,
				fmt.Sprintf("Invalid usage! Task description cannot contain %q.", strings.TrimSpace(task.FieldSeparator)))
		}
		return Outcome{}, err
	}
	e.tasks.Add(t)
	return e.persist(addedText(t, e.tasks.Len())), nil
}

// lookup resolves the task number argument to a task and its 0-based index.
func (e *Executor) lookup(cmd Command) (task.Task, int, error) {
	n, err := ParseTaskNumber(cmd)
	if err != nil {
		return nil, 0, err
	}
	t, err := e.tasks.Get(n - 1)
	if err != nil {
		return nil, 0, e.indexError(err)
	}
	return t, n - 1, nil
}

func (e *Executor) indexError(err error) error {
	if !errors.Is(err, task.ErrIndexOutOfRange) {
		return err
	}
	n := e.tasks.Len()
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return newError(ErrInvalidIndex, fmt.Sprintf("Invalid task number! You only have %d %s.", n, noun))
}

func (e *Executor) persist(text string) Outcome {
	if err := e.store.Save(e.tasks); err != nil {
		e.logger.Error("Could not save tasks", "err", err)
		text += "\nWarning: your tasks could not be saved: " + err.Error()
	}
	return Outcome{Text: text}
}
