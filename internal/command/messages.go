package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskmate-go/internal/task"
)

// Keywords lists the supported command names in help order.
var Keywords = []string{"list", "find", "mark", "unmark", "delete", "todo", "deadline", "event", "help", "bye"}

// GoodbyeMessage is the reply to bye.
const GoodbyeMessage = "Bye. Hope to see you again soon!"

// Greeting returns the welcome text shown when a session starts.
func Greeting(name string) string {
	return fmt.Sprintf("Hello! I'm %s!\nWhat can I do for you?", name)
}

// HelpText describes every command.
func HelpText() string {
	lines := []string{
		"Here is what I can do:",
		"  To add todos: todo <description>",
		"  To add deadlines: deadline <description> /by <yyyy-MM-dd HHmm>",
		"  To add events: event <description> /from <yyyy-MM-dd HHmm> /to <yyyy-MM-dd HHmm>",
		"  To list tasks: list",
		"  To search tasks: find <keyword>",
		"  To mark a task as done: mark <task number>",
		"  To mark a task as not done: unmark <task number>",
		"  To delete a task: delete <task number>",
		"  To show this help: help",
		"  To exit: bye",
	}
	return strings.Join(lines, "\n")
}

func invalidCommandText(name string) string {
	return fmt.Sprintf("Invalid command %q! Supported commands: %s. Type help for usage.",
		name, strings.Join(Keywords, ", "))
}

// FormatList renders tasks as "1. [T][ ] ..." lines.
func FormatList(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, t.DisplayLine())
	}
	return b.String()
}

func formatMatches(matches []task.Match) string {
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", m.Number, m.Task.DisplayLine())
	}
	return b.String()
}

func countText(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func addedText(t task.Task, n int) string {
	return "Got it. I've added this task:\n  " + t.DisplayLine() + "\n" + countText(n)
}

func removedText(t task.Task, n int) string {
	return "Noted. I've removed this task:\n  " + t.DisplayLine() + "\n" + countText(n)
}
