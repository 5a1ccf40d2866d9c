package command

import (
	"errors"
	"testing"

	"github.com/nibzard/taskmate-go/internal/task"
)

func TestParseTodoArgs(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"todo borrow book", "borrow book", nil},
		{"  todo   spaced   out  ", "spaced   out", nil},
		{"todo", "", ErrMissingUsageArgument},
		{"todo    ", "", ErrMissingUsageArgument},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTodoArgs(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTodoArgs(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("description = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDeadlineArgs(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDesc string
		wantBy   string
		wantErr  error
	}{
		{"valid", "deadline return book /by 2025-09-09 1900", "return book", "2025-09-09 1900", nil},
		{"no space around marker", "deadline pay rent/by2025-01-01 0900", "pay rent", "2025-01-01 0900", nil},
		{"first marker wins", "deadline a /by b /by 2025-01-01 0900", "", "", ErrInvalidDateFormat},
		{"bare keyword", "deadline", "", "", ErrInvalidDelimiter},
		{"missing marker", "deadline return book 2025-09-09 1900", "", "", ErrInvalidDelimiter},
		{"empty description", "deadline /by 2025-09-09 1900", "", "", ErrEmptyField},
		{"empty date", "deadline return book /by   ", "", "", ErrEmptyField},
		{"bad date", "deadline task /by not-a-date", "", "", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadlineArgs(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDeadlineArgs(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDeadlineArgs(%q): %v", tt.raw, err)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if by := task.FormatDateTime(got.By); by != tt.wantBy {
				t.Errorf("By = %q, want %q", by, tt.wantBy)
			}
		})
	}
}

func TestParseEventArgs(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDesc string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{
			name:     "valid",
			raw:      "event project meeting /from 2025-10-10 1000 /to 2025-11-10 1000",
			wantDesc: "project meeting",
			wantFrom: "2025-10-10 1000",
			wantTo:   "2025-11-10 1000",
		},
		{
			name:     "reversed range accepted",
			raw:      "event rewind /from 2025-10-10 1000 /to 2025-10-09 1000",
			wantDesc: "rewind",
			wantFrom: "2025-10-10 1000",
			wantTo:   "2025-10-09 1000",
		},
		{name: "bare keyword", raw: "event", wantErr: ErrInvalidDelimiter},
		{name: "missing from", raw: "event party /to 2025-10-10 1000", wantErr: ErrInvalidDelimiter},
		{name: "missing to", raw: "event something /from onlyStart", wantErr: ErrInvalidDelimiter},
		{name: "to before from", raw: "event party /to 2025-10-10 1000 /from 2025-10-10 0900", wantErr: ErrInvalidDelimiter},
		{name: "empty description", raw: "event /from 2025-10-10 1000 /to 2025-10-10 1100", wantErr: ErrEmptyField},
		{name: "empty start", raw: "event party /from /to 2025-10-10 1100", wantErr: ErrEmptyField},
		{name: "empty end", raw: "event party /from 2025-10-10 1000 /to", wantErr: ErrEmptyField},
		{name: "bad start", raw: "event party /from tonight /to 2025-10-10 1100", wantErr: ErrInvalidDateFormat},
		{name: "bad end", raw: "event party /from 2025-10-10 1000 /to late", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventArgs(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseEventArgs(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEventArgs(%q): %v", tt.raw, err)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if from := task.FormatDateTime(got.From); from != tt.wantFrom {
				t.Errorf("From = %q, want %q", from, tt.wantFrom)
			}
			if to := task.FormatDateTime(got.To); to != tt.wantTo {
				t.Errorf("To = %q, want %q", to, tt.wantTo)
			}
		})
	}
}

func TestParseTaskNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"mark 3", 3, nil},
		{"delete 0", 0, nil},
		{"mark", 0, ErrMissingUsageArgument},
		{"mark 1 2", 0, ErrMissingUsageArgument},
		{"unmark two", 0, ErrInvalidIndex},
		{"delete 1.5", 0, ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ParseTaskNumber(cmd)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTaskNumber: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
