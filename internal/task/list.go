package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrIndexOutOfRange is returned when a position is outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an out-of-range position together with the list length.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, length %d", ErrIndexOutOfRange, e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// List is an ordered collection of tasks addressed by 0-based position.
type List struct {
	tasks []Task
}

// NewList returns a list holding tasks in the given order.
func NewList(tasks ...Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

// Add appends t to the end of the list.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Get returns the task at index.
func (l *List) Get(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	return l.tasks[index], nil
}

// Remove deletes and returns the task at index, shifting later tasks down.
func (l *List) Remove(index int) (Task, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	removed := l.tasks[index]
	l.tasks = slices.Delete(l.tasks, index, index+1)
	return removed, nil
}

// IsEmpty reports whether the list has no tasks.
func (l *List) IsEmpty() bool {
	return len(l.tasks) == 0
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// All returns the tasks in list order. The returned slice is a copy;
// reordering it does not affect the list.
func (l *List) All() []Task {
	return slices.Clone(l.tasks)
}

// Match is a task found by Find along with its 1-based task number.
type Match struct {
	Number int
	Task   Task
}

// Find returns the tasks whose display line contains keyword, in list order.
func (l *List) Find(keyword string) []Match {
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(t.DisplayLine(), keyword) {
			matches = append(matches, Match{Number: i + 1, Task: t})
		}
	}
	return matches
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return &IndexError{Index: index, Len: len(l.tasks)}
	}
	return nil
}
