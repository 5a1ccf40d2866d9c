package command

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs int
	}{
		{"single word", "list", "list", 1},
		{"mixed case keyword", "LiSt", "list", 1},
		{"keyword with args", "mark 2", "mark", 2},
		{"extra whitespace", "  todo   read   book  ", "todo", 3},
		{"unknown keyword passes through", "dance now", "dance", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if len(cmd.Args) != tt.wantArgs {
				t.Errorf("Args = %v, want %d tokens", cmd.Args, tt.wantArgs)
			}
			if cmd.Raw != tt.input {
				t.Errorf("Raw = %q, want input verbatim %q", cmd.Raw, tt.input)
			}
		})
	}
}

func TestParseBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrBlankInput) {
			t.Errorf("Parse(%q) error = %v, want ErrBlankInput", input, err)
		}
		if err != nil && err.Error() != "Input cannot be blank!" {
			t.Errorf("Parse(%q) message = %q", input, err.Error())
		}
	}
}
