package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/robottwo/hui/internal/config"
	"github.com/robottwo/hui/internal/core"
	"github.com/robottwo/hui/internal/history"
	"github.com/robottwo/hui/internal/picker"
	"github.com/robottwo/hui/internal/shell"
	"github.com/robottwo/hui/internal/styles"
)

var BUILD_VERSION = "dev"

var shellFlag = flag.String("shell", "", "shell whose history to load (bash or zsh); overrides $"+shell.EnvVar)
var historyFlag = flag.String("history", "", "use a custom history file instead of the shell's default")

var helpFlag bool
var versionFlag bool

func init() {
	// Register help flags: -h and --help
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	// Register version flags: -v and --version
	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")

	// Register custom zstd sink for compressed logging
	if err := zap.RegisterSink("zstd", newCompressedSink); err != nil {
		panic(fmt.Sprintf("failed to register zstd sink: %v", err))
	}
}

// main wires the whole session together:
// 1. resolve the shell kind (-shell flag, then $HUI_TERM, then config)
// 2. ingest the shell's history file into the corpus
// 3. run the interactive picker until confirm or quit
// 4. on confirm, copy the selection to the clipboard and echo it
//
// Every fatal error happens before the terminal UI starts or after it has
// shut down, so a broken configuration never leaves the terminal in a raw
// state.
func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if helpFlag {
		printUsage()
		return
	}

	cfg, err := config.Load(core.ConfigFile())
	if err != nil {
		fatal(err)
	}

	kind, err := resolveShell(cfg)
	if err != nil {
		fatal(err)
	}

	historyPath := *historyFlag
	if historyPath == "" {
		historyPath = core.HistoryFile(kind)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		fatal(err)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()
	logger = logger.With(zap.String("sessionId", uuid.NewString()))

	logger.Info("-------- new hui session --------",
		zap.Any("args", os.Args),
		zap.Stringer("shell", kind),
		zap.String("historyPath", historyPath),
	)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fatal(fmt.Errorf("stdin is not a terminal; hui is an interactive picker"))
	}

	corpus, err := history.Load(historyPath, kind)
	if err != nil {
		logger.Error("history ingestion failed", zap.Error(err))
		fatal(err)
	}
	logger.Info("history loaded", zap.Int("entries", len(corpus)))

	entry, err := picker.Pick(corpus, logger, picker.Options{
		TickInterval: cfg.TickInterval(),
	})
	if err != nil {
		logger.Error("picker failed", zap.Error(err))
		fatal(err)
	}

	// Quit without a selection: nothing is copied, nothing is printed.
	if entry == "" {
		return
	}

	if err := clipboard.WriteAll(entry); err != nil {
		logger.Error("clipboard write failed", zap.Error(err))
		fatal(fmt.Errorf("copying selection to clipboard: %w", err))
	}

	fmt.Println("Copied to clipboard: " + styles.RESULT(entry))
}

// resolveShell picks the shell kind from the flag, the environment, or the
// config file, in that order. Exactly two values are accepted; anything
// else is fatal before any terminal setup.
func resolveShell(cfg config.Config) (shell.Kind, error) {
	selector := *shellFlag
	if selector == "" {
		selector = os.Getenv(shell.EnvVar)
	}
	if selector == "" {
		selector = cfg.Shell
	}
	return shell.ParseKind(selector)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, styles.ERROR("hui: "+err.Error()))
	os.Exit(1)
}

func printUsage() {
	// Header
	fmt.Println(styles.HEADING("Usage:") + " hui [flags]")
	fmt.Println("\nAn interactive picker for your shell history: filter, select, copy.")
	fmt.Println()

	// Flags
	fmt.Println(styles.HEADING("Options:"))

	// We want to group aliases like -h and -help together
	// Map to track which flags we've already printed
	printed := make(map[string]bool)

	flag.VisitAll(func(f *flag.Flag) {
		if printed[f.Name] {
			return
		}

		// Identify aliases based on shared usage strings.
		aliases := []string{f.Name}
		flag.VisitAll(func(p *flag.Flag) {
			if p.Name == f.Name {
				return
			}
			if p.Usage == f.Usage {
				aliases = append(aliases, p.Name)
				printed[p.Name] = true
			}
		})
		printed[f.Name] = true

		// Separate short and long flags
		var shortFlags, longFlags []string
		for _, name := range aliases {
			if len(name) == 1 {
				shortFlags = append(shortFlags, "-"+name)
			} else {
				longFlags = append(longFlags, "-"+name)
			}
		}

		// Construct the flag string: short flags first, then long flags
		flagStr := ""
		if len(shortFlags) > 0 {
			flagStr = strings.Join(shortFlags, ", ")
		}
		if len(longFlags) > 0 {
			if flagStr != "" {
				flagStr += ", "
			}
			flagStr += strings.Join(longFlags, ", ")
		}

		// Check if the flag takes an argument
		argName, usage := flag.UnquoteUsage(f)
		if argName != "" {
			flagStr += " <" + argName + ">"
		}

		fmt.Printf("  %-28s %s\n", flagStr, usage)
	})

	fmt.Println()
	fmt.Println(styles.HEADING("Keys:"))
	fmt.Printf("  %-28s %s\n", "/", "filter the history")
	fmt.Printf("  %-28s %s\n", "enter", "copy the selected command and exit")
	fmt.Printf("  %-28s %s\n", "q", "exit without copying")
	fmt.Println()
	fmt.Println(styles.HINT("The shell is read from -shell, $" + shell.EnvVar + ", or the config file, in that order."))
}

func initializeLogger(cfg config.Config) (*zap.Logger, error) {
	logLevel := cfg.ZapLevel()
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Old sessions' logs are bounded; failure to rotate never blocks startup.
	_ = core.RotateLogFiles()

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		"zstd://" + core.LogFile(),
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// newCompressedSink creates a new compressed sink from a URL.
// The URL path should point to the log file location.
// Implements proper zstd frame continuation by checking if the existing file
// contains valid zstd frames and appending new frames appropriately.
func newCompressedSink(u *url.URL) (zap.Sink, error) {
	filePath := u.Path

	flags := os.O_CREATE | os.O_WRONLY

	fileInfo, err := os.Stat(filePath)
	if err == nil && fileInfo.Size() > 0 {
		if isValidZstdFile(filePath) {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &compressedSink{
		file:    file,
		encoder: encoder,
	}, nil
}

// isValidZstdFile checks if a file starts with a valid zstd magic number.
// Returns false if file doesn't exist, is empty, or has invalid header.
func isValidZstdFile(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer func() {
		_ = file.Close()
	}()

	buf := make([]byte, 4)
	n, err := file.Read(buf)
	if err != nil || n < 4 {
		return false
	}

	return buf[0] == 0x28 && buf[1] == 0xB5 && buf[2] == 0x2F && buf[3] == 0xFD
}

// compressedSink wraps a zstd encoder to provide compressed log file writing.
// It implements the WriteSyncer interface required by zap's custom sinks.
type compressedSink struct {
	file    *os.File
	encoder *zstd.Encoder
}

// Write writes compressed data to the underlying file via the zstd encoder.
// Returns len(p) on success to satisfy io.Writer contract, regardless of
// how many compressed bytes were written.
func (s *compressedSink) Write(p []byte) (int, error) {
	_, err := s.encoder.Write(p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sync flushes the encoder buffer and syncs the file to disk.
func (s *compressedSink) Sync() error {
	if err := s.encoder.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close closes the encoder and then closes the underlying file.
// Always closes the file to prevent file descriptor leaks, even if
// encoder close fails.
func (s *compressedSink) Close() error {
	encErr := s.encoder.Close()
	fileErr := s.file.Close()

	if encErr != nil {
		return encErr
	}
	return fileErr
}
