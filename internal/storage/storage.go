// Package storage persists a task list as a pipe-delimited text file.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmate-go/internal/task"
)

var (
	// ErrCorruptedRecord marks a storage line that does not match its kind's format.
	ErrCorruptedRecord = errors.New("corrupted record")
	// ErrIO marks a file-system failure while loading or saving.
	ErrIO = errors.New("storage i/o failure")
)

// RecordError describes one corrupted line.
type RecordError struct {
	Line   int // 1-based line number
	Text   string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s at line %d: %s", ErrCorruptedRecord, e.Line, e.Reason)
}

// Unwrap returns ErrCorruptedRecord.
func (e *RecordError) Unwrap() error {
	return ErrCorruptedRecord
}

// LoadResult is the outcome of a Load.
type LoadResult struct {
	List *task.List
	// Created is true when the file did not exist and was created empty.
	Created bool
	// Corrupted holds one *RecordError per skipped line.
	Corrupted []error
}

// Storage reads and writes the task file at a fixed path.
type Storage struct {
	path   string
	logger *log.Logger
}

// New returns a Storage for path. A nil logger discards log output.
func New(path string, logger *log.Logger) *Storage {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Storage{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Storage) Path() string {
	return s.path
}

// Load ensures the file and its parent directories exist and decodes any
// existing content. Corrupted lines are logged and skipped. A file-system
// failure yields an empty list and an error wrapping ErrIO.
func (s *Storage) Load() (*LoadResult, error) {
	empty := &LoadResult{List: task.NewList()}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return empty, fmt.Errorf("%w: create data directory: %w", ErrIO, err)
		}
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		created, createErr := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0644)
		if createErr != nil {
			return empty, fmt.Errorf("%w: create data file: %w", ErrIO, createErr)
		}
		if err := created.Close(); err != nil {
			return empty, fmt.Errorf("%w: create data file: %w", ErrIO, err)
		}
		s.logger.Info("Created data file", "path", s.path)
		empty.Created = true
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("%w: open data file: %w", ErrIO, err)
	}
	defer f.Close()

	list, corrupted, err := Decode(f)
	if err != nil {
		return empty, fmt.Errorf("%w: read data file: %w", ErrIO, err)
	}
	for _, c := range corrupted {
		s.logger.Warn("Skipping corrupted line", "path", s.path, "err", c)
	}
	s.logger.Debug("Loaded tasks", "path", s.path, "count", list.Len(), "skipped", len(corrupted))

	return &LoadResult{List: list, Corrupted: corrupted}, nil
}

// Save truncates the file and writes every task in list order.
func (s *Storage) Save(list *task.List) error {
	f, err := os.Create(s.path)
	if err != nil {
		s.logger.Error("Saving tasks failed", "path", s.path, "err", err)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := Encode(f, list); err != nil {
		f.Close()
		s.logger.Error("Saving tasks failed", "path", s.path, "err", err)
		return fmt.Errorf("%w: write data file: %w", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		s.logger.Error("Saving tasks failed", "path", s.path, "err", err)
		return fmt.Errorf("%w: close data file: %w", ErrIO, err)
	}
	s.logger.Debug("Saved tasks", "path", s.path, "count", list.Len())
	return nil
}

// Encode writes one storage line per task, each terminated by a newline.
func Encode(w io.Writer, list *task.List) error {
	bw := bufio.NewWriter(w)
	for _, t := range list.All() {
		if _, err := bw.WriteString(t.Serialize() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// MaxLineLength is the longest storage line Decode accepts, in bytes.
// Longer lines are reported as corrupted and decoding continues.
const MaxLineLength = 1024 * 1024

// Decode reads storage lines from r. Lines that fail to decode are returned
// as *RecordError values and do not stop decoding. Blank lines and lines
// with an unknown kind letter are ignored. The returned error is non-nil
// only when reading from r fails.
func Decode(r io.Reader) (*task.List, []error, error) {
	list := task.NewList()
	var corrupted []error

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return list, corrupted, readErr
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNo++

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		switch {
		case strings.TrimSpace(line) == "":
		case len(line) > MaxLineLength:
			corrupted = append(corrupted, &RecordError{
				Line:   lineNo,
				Text:   line[:80] + "...",
				Reason: fmt.Sprintf("line is %d bytes, limit is %d", len(line), MaxLineLength),
			})
		default:
			t, err := DecodeLine(line)
			var recErr *RecordError
			if errors.As(err, &recErr) {
				recErr.Line = lineNo
				corrupted = append(corrupted, recErr)
			} else if t != nil {
				list.Add(t)
			}
		}

		if readErr != nil {
			break
		}
	}
	return list, corrupted, nil
}

// DecodeLine decodes a single storage line. It returns (nil, nil) for a
// line whose kind letter is not recognized.
func DecodeLine(line string) (task.Task, error) {
	fields := strings.Split(line, task.FieldSeparator)
	kind, ok := task.ParseKind(fields[0])
	if !ok {
		return nil, nil
	}

	corrupt := func(format string, args ...any) error {
		return &RecordError{Text: line, Reason: fmt.Sprintf(format, args...)}
	}

	want := map[task.Kind]int{
		task.KindToDo:     3,
		task.KindDeadline: 4,
		task.KindEvent:    4,
	}[kind]
	if len(fields) != want {
		return nil, corrupt("%s record has %d fields, want %d", kind, len(fields), want)
	}

	var done bool
	switch fields[1] {
	case "1":
		done = true
	case "0":
	default:
		return nil, corrupt("completion flag %q is not 0 or 1", fields[1])
	}

	description := fields[2]
	var t task.Task
	var err error
	switch kind {
	case task.KindToDo:
		t, err = task.NewToDo(description)
	case task.KindDeadline:
		by, parseErr := task.ParseDateTime(fields[3])
		if parseErr != nil {
			return nil, corrupt("%v", parseErr)
		}
		t, err = task.NewDeadline(description, by)
	case task.KindEvent:
		span := strings.Split(fields[3], task.RangeSeparator)
		if len(span) != 2 {
			return nil, corrupt("event range %q is not \"<from> - <to>\"", fields[3])
		}
		from, parseErr := task.ParseDateTime(span[0])
		if parseErr != nil {
			return nil, corrupt("%v", parseErr)
		}
		to, parseErr := task.ParseDateTime(span[1])
		if parseErr != nil {
			return nil, corrupt("%v", parseErr)
		}
		t, err = task.NewEvent(description, from, to)
	}
	if err != nil {
		return nil, corrupt("%v", err)
	}

	if done {
		t.MarkDone()
	}
	return t, nil
}
