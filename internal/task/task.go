package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind is the single-letter tag identifying a task variant.
type Kind byte

const (
	KindToDo     Kind = 'T'
	KindDeadline Kind = 'D'
	KindEvent    Kind = 'E'
)

// String returns the kind letter.
func (k Kind) String() string {
	return string(rune(k))
}

// ParseKind maps a kind letter back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "T":
		return KindToDo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	}
	return 0, false
}

// FieldSeparator joins the fields of a storage line.
const FieldSeparator = " | "

// RangeSeparator joins the start and end of an event in its storage line.
const RangeSeparator = " - "

var (
	// ErrEmptyDescription is returned when a task is created with a blank description.
	ErrEmptyDescription = errors.New("task description must not be blank")
	// ErrSeparatorInDescription is returned when a description would split
	// into extra fields in its storage line.
	ErrSeparatorInDescription = errors.New("task description must not contain the field separator")
)

// Task is implemented by *ToDo, *Deadline and *Event only.
type Task interface {
	Kind() Kind
	Description() string
	IsDone() bool
	MarkDone()
	MarkUndone()
	// DisplayLine renders the task for users, e.g. "[D][ ] return book (by: 2025-09-09 1900)".
	DisplayLine() string
	// Serialize renders the task as one storage line without a trailing newline.
	Serialize() string

	sealed()
}

type base struct {
	description string
	done        bool
}

func newBase(description string) (base, error) {
	if strings.TrimSpace(description) == "" {
		return base{}, ErrEmptyDescription
	}
	// A trailing " |" merges with the separator that follows it.
	if strings.Contains(description, FieldSeparator) || strings.HasSuffix(description, " |") {
		return base{}, ErrSeparatorInDescription
	}
	return base{description: description}, nil
}

func (b *base) Description() string { return b.description }
func (b *base) IsDone() bool        { return b.done }
func (b *base) MarkDone()           { b.done = true }
func (b *base) MarkUndone()         { b.done = false }
func (b *base) sealed()             {}

func (b *base) statusIcon() string {
	if b.done {
		return "X"
	}
	return " "
}

func (b *base) doneFlag() string {
	if b.done {
		return "1"
	}
	return "0"
}

func (b *base) prefix(k Kind) string {
	return fmt.Sprintf("[%s][%s] %s", k, b.statusIcon(), b.description)
}

func (b *base) fields(k Kind) []string {
	return []string{k.String(), b.doneFlag(), b.description}
}

// ToDo is a task with only a description.
type ToDo struct {
	base
}

// NewToDo creates an undone to-do.
func NewToDo(description string) (*ToDo, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &ToDo{base: b}, nil
}

func (t *ToDo) Kind() Kind { return KindToDo }

func (t *ToDo) DisplayLine() string {
	return t.prefix(KindToDo)
}

func (t *ToDo) Serialize() string {
	return strings.Join(t.fields(KindToDo), FieldSeparator)
}

// Deadline is a task that must be done by a point in time.
type Deadline struct {
	base
	By time.Time
}

// NewDeadline creates an undone deadline.
func NewDeadline(description string, by time.Time) (*Deadline, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &Deadline{base: b, By: by}, nil
}

func (d *Deadline) Kind() Kind { return KindDeadline }

func (d *Deadline) DisplayLine() string {
	return fmt.Sprintf("%s (by: %s)", d.prefix(KindDeadline), FormatDateTime(d.By))
}

func (d *Deadline) Serialize() string {
	return strings.Join(append(d.fields(KindDeadline), FormatDateTime(d.By)), FieldSeparator)
}

// Event is a task spanning a time range. From is not required to precede To.
type Event struct {
	base
	From time.Time
	To   time.Time
}

// NewEvent creates an undone event.
func NewEvent(description string, from, to time.Time) (*Event, error) {
	b, err := newBase(description)
	if err != nil {
		return nil, err
	}
	return &Event{base: b, From: from, To: to}, nil
}

func (e *Event) Kind() Kind { return KindEvent }

func (e *Event) DisplayLine() string {
	return fmt.Sprintf("%s (from: %s to: %s)", e.prefix(KindEvent), FormatDateTime(e.From), FormatDateTime(e.To))
}

func (e *Event) Serialize() string {
	span := FormatDateTime(e.From) + RangeSeparator + FormatDateTime(e.To)
	return strings.Join(append(e.fields(KindEvent), span), FieldSeparator)
}
