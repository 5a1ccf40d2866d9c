package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nibzard/taskmate-go/internal/task"
)

// Delimiter markers recognized in deadline and event commands.
const (
	MarkerBy   = "/by"
	MarkerFrom = "/from"
	MarkerTo   = "/to"
)

const (
	usageTodo     = "Usage: todo <description>"
	usageDeadline = "Usage: deadline <description> /by <yyyy-MM-dd HHmm>"
	usageEvent    = "Usage: event <description> /from <yyyy-MM-dd HHmm> /to <yyyy-MM-dd HHmm>"
)

// DeadlineArgs are the parts of a deadline command.
type DeadlineArgs struct {
	Description string
	By          time.Time
}

// EventArgs are the parts of an event command.
type EventArgs struct {
	Description string
	From        time.Time
	To          time.Time
}

// splitKeyword returns the trimmed line and the offset of the first
// whitespace after the keyword, or -1 when the line is a bare keyword.
func splitKeyword(raw string) (string, int) {
	line := strings.TrimSpace(raw)
	return line, strings.IndexFunc(line, unicode.IsSpace)
}

// ParseTodoArgs returns the description of a todo command: everything after
// the keyword, trimmed.
func ParseTodoArgs(raw string) (string, error) {
	line, space := splitKeyword(raw)
	if space < 0 {
		return "", newError(ErrMissingUsageArgument, "Invalid usage! "+usageTodo)
	}
	desc := strings.TrimSpace(line[space:])
	if desc == "" {
		return "", newError(ErrMissingUsageArgument, "Invalid usage! "+usageTodo)
	}
	return desc, nil
}

// ParseDeadlineArgs extracts "deadline <description> /by <date>". The
// description ends at the first "/by" after the keyword, so a description
// that itself contains "/by" is split there.
func ParseDeadlineArgs(raw string) (DeadlineArgs, error) {
	line, space := splitKeyword(raw)
	if space < 0 {
		return DeadlineArgs{}, newError(ErrInvalidDelimiter, "Invalid usage! "+usageDeadline)
	}
	by := strings.Index(line[space:], MarkerBy)
	if by < 0 {
		return DeadlineArgs{}, newError(ErrInvalidDelimiter,
			fmt.Sprintf("Invalid usage! Missing %s. %s", MarkerBy, usageDeadline))
	}
	by += space

	desc := strings.TrimSpace(line[space:by])
	date := strings.TrimSpace(line[by+len(MarkerBy):])
	if desc == "" || date == "" {
		return DeadlineArgs{}, newError(ErrEmptyField, "Invalid usage! Task description or date/time missing. "+usageDeadline)
	}

	at, err := parseDate(date)
	if err != nil {
		return DeadlineArgs{}, err
	}
	return DeadlineArgs{Description: desc, By: at}, nil
}

// ParseEventArgs extracts "event <description> /from <date> /to <date>".
// The first "/from" after the keyword and the first "/to" after that are
// used; "/to" appearing only before "/from" is a delimiter error.
func ParseEventArgs(raw string) (EventArgs, error) {
	line, space := splitKeyword(raw)
	if space < 0 {
		return EventArgs{}, newError(ErrInvalidDelimiter, "Invalid usage! "+usageEvent)
	}
	from := strings.Index(line[space:], MarkerFrom)
	if from < 0 {
		return EventArgs{}, newError(ErrInvalidDelimiter,
			fmt.Sprintf("Invalid usage! Missing %s. %s", MarkerFrom, usageEvent))
	}
	from += space
	fromEnd := from + len(MarkerFrom)

	to := strings.Index(line[fromEnd:], MarkerTo)
	if to < 0 {
		return EventArgs{}, newError(ErrInvalidDelimiter,
			fmt.Sprintf("Invalid usage! Missing %s after %s. %s", MarkerTo, MarkerFrom, usageEvent))
	}
	to += fromEnd

	desc := strings.TrimSpace(line[space:from])
	start := strings.TrimSpace(line[fromEnd:to])
	end := strings.TrimSpace(line[to+len(MarkerTo):])
	if desc == "" || start == "" || end == "" {
		return EventArgs{}, newError(ErrEmptyField, "Invalid usage! Task description or date/time missing. "+usageEvent)
	}

	startAt, err := parseDate(start)
	if err != nil {
		return EventArgs{}, err
	}
	endAt, err := parseDate(end)
	if err != nil {
		return EventArgs{}, err
	}
	return EventArgs{Description: desc, From: startAt, To: endAt}, nil
}

// ParseTaskNumber reads the single 1-based task number of mark, unmark and
// delete. Range checking is left to the caller.
func ParseTaskNumber(cmd Command) (int, error) {
	if len(cmd.Args) != 2 {
		return 0, newError(ErrMissingUsageArgument,
			fmt.Sprintf("Invalid usage! Usage: %s <task number>", cmd.Name))
	}
	n, err := strconv.Atoi(cmd.Args[1])
	if err != nil {
		return 0, newError(ErrInvalidIndex,
			fmt.Sprintf("Invalid task number! %q is not a number.", cmd.Args[1]))
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := task.ParseDateTime(s)
	if errors.Is(err, task.ErrInvalidDateFormat) {
		return time.Time{}, newError(ErrInvalidDateFormat,
			fmt.Sprintf("Invalid date %q! Format for the date is: yyyy-MM-dd HHmm", s))
	}
	return t, err
}
