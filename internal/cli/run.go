// Package cli is the filescope command line entry point.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/config"
	"filescope/internal/discovery"
	"filescope/internal/eventbus"
	"filescope/internal/fulltext"
	"filescope/internal/preview"
	"filescope/internal/search"
	"filescope/internal/terminal"
	"filescope/internal/ui"
	"filescope/internal/ui/input/keys"
	inputtypes "filescope/internal/ui/input/types"
	"filescope/internal/ui/state"
)

// Version is set at build time
var Version = "dev"

// e2eEnv makes every frame carry the ready marker
const e2eEnv = "FILESCOPE_E2E_TEST"

// Streams are the standard files of the process
type Streams struct {
	In  *os.File
	Out *os.File
	Err io.Writer
}

// DefaultStreams returns the process's stdin, stdout and stderr
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type flags struct {
	dir         string
	configPath  string
	backend     string
	logPath     string
	debug       bool
	writeConfig bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("filescope", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: filescope [flags] [dir]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.dir, "dir", "", "Directory to search")
	fs.StringVar(&f.dir, "d", "", "Directory to search (shorthand)")
	fs.StringVar(&f.configPath, "config", "", "Configuration file (default <dir>/"+config.FileName+", then the user config)")
	fs.StringVar(&f.backend, "backend", "", "Search backend: scan or index")
	fs.StringVar(&f.logPath, "log", "", "Log file (default $XDG_STATE_HOME/filescope/filescope.log)")
	fs.BoolVar(&f.debug, "debug", false, "Log at debug level")
	fs.BoolVar(&f.writeConfig, "write-config", false, "Write the default configuration to the user config path and exit")
	fs.BoolVar(&f.version, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.dir == "" && fs.NArg() > 0 {
		f.dir = fs.Arg(0)
	}
	return f, nil
}

// Run executes the command and returns the process exit code
func Run(ctx context.Context, args []string, streams Streams) int {
	f, err := parseFlags(args, streams.Err)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if f.version {
		fmt.Fprintf(streams.Out, "filescope %s\n", Version)
		return 0
	}

	if f.writeConfig {
		return writeConfig(streams)
	}

	if err := terminal.Require(streams.Out); err != nil {
		fmt.Fprintf(streams.Err, "filescope: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLog(f.logPath, f.debug)
	if err != nil {
		fmt.Fprintf(streams.Err, "filescope: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	if err := run(ctx, f, streams, logger); err != nil {
		logger.Error("filescope failed", "err", err)
		fmt.Fprintf(streams.Err, "filescope: %v\n", err)
		return 1
	}
	return 0
}

func writeConfig(streams Streams) int {
	svc := config.NewConfigService()
	path := svc.UserConfigPath()
	if err := svc.SaveToPath(config.DefaultConfig(), path); err != nil {
		fmt.Fprintf(streams.Err, "filescope: %v\n", err)
		return 1
	}
	fmt.Fprintf(streams.Out, "wrote %s\n", path)
	return 0
}

// loadConfig resolves the configuration and applies flag overrides
func loadConfig(svc config.ConfigService, root string, f *flags) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		used string
		err  error
	)
	if f.configPath != "" {
		used = f.configPath
		cfg, err = svc.LoadFromPath(f.configPath)
	} else {
		cfg, used, err = svc.Load(root)
	}
	if err != nil {
		return nil, used, err
	}

	if f.backend != "" {
		cfg.Search.Backend = f.backend
		if err := cfg.Validate(); err != nil {
			return nil, used, err
		}
	}
	return cfg, used, nil
}

func resolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine current directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot search %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot search %s: not a directory", dir)
	}
	return abs, nil
}

func collectorOptions(cfg *config.Config) discovery.Options {
	opts := discovery.DefaultOptions()
	opts.Threads = cfg.Walk.Threads
	opts.Capacity = cfg.Walk.ChannelCapacity
	opts.Hidden = cfg.Walk.Hidden
	opts.FollowSymlinks = cfg.Walk.FollowSymlinks
	opts.RespectIgnore = cfg.Walk.RespectIgnore
	opts.ExtraIgnore = cfg.Walk.Ignore
	opts.MaxDepth = cfg.Walk.MaxDepth
	return opts
}

func stateOptions(cfg *config.Config) state.Options {
	opts := state.DefaultOptions()
	if cfg.UI.InitialMode == config.ModeBrowsing {
		opts.InitialMode = inputtypes.ModeBrowsing
	}
	opts.ContextLines = cfg.UI.ContextLines
	opts.Trailing = cfg.Search.Trailing
	return opts
}

func run(ctx context.Context, f *flags, streams Streams, logger *slog.Logger) error {
	root, err := resolveRoot(f.dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	defer bus.Close()

	cfg, used, err := loadConfig(config.NewConfigService(), root, f)
	if err != nil {
		return err
	}
	logger.Info("starting", "root", root, "config", used, "backend", cfg.Search.Backend, "version", Version)

	var backend search.Backend
	if cfg.Search.Backend == config.BackendIndex {
		idx, err := fulltext.Open(root, "", bus, logger)
		if err != nil {
			return err
		}
		logger.Info("using full-text index", "dir", idx.Dir())
		defer func() {
			if err := idx.Close(); err != nil {
				logger.Warn("closing index failed", "err", err)
			}
		}()
		backend = idx
	}

	searchOpts := search.DefaultOptions()
	searchOpts.Debounce = cfg.Search.Debounce()
	searchOpts.Limits = cfg.Search.Limits()
	searchOpts.SortByScore = cfg.Search.Sort == config.SortScore
	searchOpts.Logger = logger
	index := search.NewIndex(root, backend, searchOpts)

	previewer := preview.New(preview.Options{
		TabWidth:  cfg.UI.TabWidth,
		Highlight: cfg.UI.Highlight,
		Theme:     cfg.UI.Theme,
		Logger:    logger,
	})

	collector := discovery.NewCollector(bus, collectorOptions(cfg), logger)
	scanCtx, cancelScan := context.WithCancel(ctx)
	defer cancelScan()
	paths, err := collector.Start(scanCtx, root)
	if err != nil {
		return err
	}
	defer collector.Stop()

	width, height := terminal.Size(streams.Out)
	model := ui.NewModel(ui.Options{
		Root:     root,
		Paths:    paths,
		Searcher: index,
		Loader:   previewer,
		State:    stateOptions(cfg),
		Keys:     keys.Default(),
		Ready:    os.Getenv(e2eEnv) == "1",
		Logger:   logger,
		Width:    width,
		Height:   height,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
	)
	model.SetProgram(p)

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range []eventbus.EventType{eventbus.EventScanStarted, eventbus.EventScanCompleted, eventbus.EventIndexBuilt, eventbus.EventError} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info("interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// defaultLogPath is $XDG_STATE_HOME/filescope/filescope.log, or the same
// below the temp directory
func defaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "filescope", "filescope.log")
}

// openLog creates the file logger. The terminal belongs to the UI, so logs
// never go to stdout or stderr.
func openLog(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = logFile.Close() }, nil
}
