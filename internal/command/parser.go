// Package command parses user input lines and executes them against a task list.
package command

import "strings"

// Command is one parsed input line.
type Command struct {
	// Name is the lower-cased first token.
	Name string
	// Raw is the input line exactly as entered.
	Raw string
	// Args holds every whitespace-separated token, Name's original spelling first.
	Args []string
}

// Parse splits input into a Command. It does not check whether the command
// name is known.
func Parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, newError(ErrBlankInput, "Input cannot be blank!")
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Raw:  input,
		Args: fields,
	}, nil
}
