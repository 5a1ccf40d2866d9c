// Package cmd implements the CLI command structure for taskmate.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmate-go/internal/config"
	"github.com/nibzard/taskmate-go/internal/datadir"
	"github.com/nibzard/taskmate-go/internal/logging"
	"github.com/nibzard/taskmate-go/internal/session"
	"github.com/nibzard/taskmate-go/internal/storage"
	"github.com/nibzard/taskmate-go/internal/task"
	"github.com/nibzard/taskmate-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskmate CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskmate", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand or a leading flag means chat.
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "chat":
		if cfg.UI == config.UITUI {
			return tuiCommand(ctx, cfg)
		}
		return chatCommand(ctx, cfg)
	case "tui":
		return tuiCommand(ctx, cfg)
	case "exec":
		return execCommand(cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the logger for a command. With a log directory configured
// every run gets its own session log file; otherwise records go to fallback.
func newLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	opts := logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	if cfg.LogDir == "" {
		return logging.New(fallback, opts), func() {}, nil
	}

	sl, err := logging.OpenSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session log: %w", err)
	}
	// Session logs always carry timestamps.
	opts.ReportTimestamp = true
	logger := logging.New(sl.Writer(), opts)
	logger.Debug("Session log opened", "path", sl.Path)
	return logger, func() {
		if err := sl.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing session log: %v\n", err)
		}
	}, nil
}

func openSession(cfg *config.Config, fallback io.Writer) (*session.Session, func(), error) {
	logger, closeLog, err := newLogger(cfg, fallback)
	if err != nil {
		return nil, nil, err
	}
	store := storage.New(cfg.DataFile, logger)
	s := session.New(store, session.Options{Name: cfg.Name, Logger: logger})
	return s, closeLog, nil
}

// chatCommand runs the line-oriented console session on stdin and stdout.
func chatCommand(ctx context.Context, cfg *config.Config) error {
	s, closeLog, err := openSession(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	return s.Run(ctx, os.Stdin, os.Stdout)
}

// tuiCommand runs the windowed chat.
func tuiCommand(ctx context.Context, cfg *config.Config) error {
	if !ui.IsTTY(os.Stdout) {
		return errors.New("tui requires a TTY")
	}
	// Log lines would corrupt the alternate screen.
	s, closeLog, err := openSession(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	return ui.RunChat(ctx, s, cfg.Name)
}

// execCommand runs one command line against the task file and prints the reply.
func execCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("exec requires a command, e.g. taskmate exec todo read book")
	}
	s, closeLog, err := openSession(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	reply, _ := s.Submit(strings.Join(args, " "))
	fmt.Println(reply)
	return nil
}

// lsCommand prints tasks without starting a session. Tasks keep their list
// numbers so they can be passed to mark, unmark and delete.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmate ls", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (done|pending)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 0 && *statusFilter == "" && isStatus(remaining[0]) {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if *statusFilter != "" && !isStatus(*statusFilter) {
		return fmt.Errorf("unknown status %q (expected done|pending)", *statusFilter)
	}
	keyword := strings.Join(remaining, " ")

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := storage.New(cfg.DataFile, logger).Load()
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	var matches []task.Match
	for _, m := range res.List.Find(keyword) {
		switch {
		case *statusFilter == "done" && !m.Task.IsDone():
			continue
		case *statusFilter == "pending" && m.Task.IsDone():
			continue
		}
		matches = append(matches, m)
	}

	if len(matches) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%d. %s\n", m.Number, m.Task.DisplayLine())
	}
	return nil
}

func isStatus(s string) bool {
	return s == "done" || s == "pending"
}

// doctorCommand checks the configuration, the task file and the log directory.
func doctorCommand(cws *config.ConfigWithSources) error {
	cfg := cws.Config
	allOK := true

	fmt.Println("Taskmate Doctor")
	fmt.Println("===============")
	fmt.Println()

	// Config files were schema-validated by Load; reaching here means they passed.
	fmt.Println("Config:")
	if len(cws.Files) == 0 {
		fmt.Println("  ✅ No config files (using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Printf("  ✅ %s\n", f)
	}
	fmt.Printf("  ✅ UI: %s\n", cfg.UI)
	fmt.Println()

	fmt.Printf("Data file: %s\n", cfg.DataFile)
	if !checkDataFile(cfg.DataFile) {
		allOK = false
	}
	fmt.Println()

	if cfg.LogDir != "" {
		fmt.Printf("Log dir: %s\n", cfg.LogDir)
		logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		} else if latest, err := logging.FindLatestLog(logDir); err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		} else if latest == "" {
			fmt.Println("  ⚠️  No session logs yet")
		} else {
			fmt.Printf("  ✅ Latest: %s\n", latest)
		}
		fmt.Println()
	}

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskmate may not be able to keep your tasks.")
	return errors.New("doctor checks failed")
}

// checkDataFile reports on the task file without creating it.
func checkDataFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first run)")
			return true
		}
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	defer f.Close()

	list, corrupted, err := storage.Decode(f)
	if err != nil {
		fmt.Printf("  ❌ Read error: %v\n", err)
		return false
	}
	fmt.Printf("  ✅ %d task(s)\n", list.Len())
	if len(corrupted) == 0 {
		return true
	}
	fmt.Printf("  ❌ %d corrupted line(s), skipped on load:\n", len(corrupted))
	for _, c := range corrupted {
		fmt.Printf("     - %v\n", c)
	}
	return false
}

// tailCommand prints the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmate tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	baseDir := cfg.LogDir
	if baseDir == "" {
		baseDir = config.ExpandPath(datadir.DefaultLogDir)
	}
	logDir, err := logging.FindLogDir(baseDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	err = logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
	if *follow && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// configCommand prints the resolved configuration with the source of each value.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskmate config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config JSON Schema")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *example:
		fmt.Print(config.ExampleConfig())
		return nil
	case *schema:
		fmt.Println(strings.TrimSpace(config.Schema()))
		return nil
	}

	if path := cws.GetConfigFile(); path != "" {
		fmt.Printf("# config file: %s\n", path)
	} else {
		fmt.Println("# no config file found")
	}
	for _, f := range cws.Config.Fields() {
		value := fmt.Sprintf("%v", f.Value)
		if s, ok := f.Value.(string); ok {
			value = fmt.Sprintf("%q", s)
		}
		fmt.Printf("%-15s = %-40s # %s\n", f.Key, value, cws.Sources[f.Key])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskmate version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskmate - A personal task tracker you talk to")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmate [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat               Start a console session (default command)")
	fmt.Fprintln(w, "  tui                Start the windowed chat")
	fmt.Fprintln(w, "  exec <command>     Run one command, e.g. exec deadline report /by 2024-05-01 1800")
	fmt.Fprintln(w, "  ls [status] [word] List tasks, optionally only done|pending or matching word")
	fmt.Fprintln(w, "  doctor             Check config and task file")
	fmt.Fprintln(w, "  tail               Show the latest session log")
	fmt.Fprintln(w, "  config             Show the resolved configuration")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w, "  -schema")
	fmt.Fprintln(w, "        Print the config JSON Schema")
}
