package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"filescope/internal/domain"
)

// FileName is the per-directory configuration file looked up in the search root
const FileName = ".filescope.toml"

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Backend names
const (
	BackendScan  = "scan"
	BackendIndex = "index"
)

// Sort orders
const (
	SortPath  = "path"
	SortScore = "score"
)

// Initial modes
const (
	ModeSearching = "searching"
	ModeBrowsing  = "browsing"
)

// Config represents the application configuration
type Config struct {
	Search SearchSettings `toml:"search"`
	Walk   WalkSettings   `toml:"walk"`
	UI     UISettings     `toml:"ui"`
}

// SearchSettings controls the search engine
type SearchSettings struct {
	Backend         string `toml:"backend"`
	DebounceMS      int    `toml:"debounce_ms"`
	MaxFiles        int    `toml:"max_files"`
	MaxLinesPerFile int    `toml:"max_lines_per_file"`
	MaxResults      int    `toml:"max_results"`
	Sort            string `toml:"sort"`
	Trailing        bool   `toml:"trailing"`
}

// WalkSettings controls directory traversal
type WalkSettings struct {
	Threads         int      `toml:"threads"`
	ChannelCapacity int      `toml:"channel_capacity"`
	Hidden          bool     `toml:"hidden"`
	FollowSymlinks  bool     `toml:"follow_symlinks"`
	RespectIgnore   bool     `toml:"respect_ignore"`
	Ignore          []string `toml:"ignore"`
	MaxDepth        int      `toml:"max_depth"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	InitialMode  string `toml:"initial_mode"`
	ContextLines int    `toml:"context_lines"`
	TabWidth     int    `toml:"tab_width"`
	Highlight    bool   `toml:"highlight"`
	Theme        string `toml:"theme"`
}

// Debounce returns the search debounce interval
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Limits returns the search caps
func (s SearchSettings) Limits() domain.Limits {
	return domain.Limits{
		MaxFiles:        s.MaxFiles,
		MaxLinesPerFile: s.MaxLinesPerFile,
		MaxResults:      s.MaxResults,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchSettings{
			Backend:         BackendScan,
			DebounceMS:      500,
			MaxFiles:        120,
			MaxLinesPerFile: 20,
			Sort:            SortPath,
			Trailing:        true,
		},
		Walk: WalkSettings{
			Threads:         2,
			ChannelCapacity: 100,
			RespectIgnore:   true,
		},
		UI: UISettings{
			InitialMode:  ModeSearching,
			ContextLines: 6,
			TabWidth:     4,
			Highlight:    true,
			Theme:        "monokai",
		},
	}
}

// Validate replaces out-of-range numbers with defaults and rejects unknown enum values
func (c *Config) Validate() error {
	def := DefaultConfig()

	switch c.Search.Backend {
	case "":
		c.Search.Backend = def.Search.Backend
	case BackendScan, BackendIndex:
	default:
		return fmt.Errorf("search.backend: unknown backend %q", c.Search.Backend)
	}
	switch c.Search.Sort {
	case "":
		c.Search.Sort = def.Search.Sort
	case SortPath, SortScore:
	default:
		return fmt.Errorf("search.sort: unknown order %q", c.Search.Sort)
	}
	switch c.UI.InitialMode {
	case "":
		c.UI.InitialMode = def.UI.InitialMode
	case ModeSearching, ModeBrowsing:
	default:
		return fmt.Errorf("ui.initial_mode: unknown mode %q", c.UI.InitialMode)
	}

	if c.Search.DebounceMS < 0 {
		c.Search.DebounceMS = def.Search.DebounceMS
	}
	if c.Search.MaxFiles <= 0 {
		c.Search.MaxFiles = def.Search.MaxFiles
	}
	if c.Search.MaxLinesPerFile <= 0 {
		c.Search.MaxLinesPerFile = def.Search.MaxLinesPerFile
	}
	if c.Search.MaxResults < 0 {
		c.Search.MaxResults = 0
	}
	if c.Walk.Threads <= 0 {
		c.Walk.Threads = def.Walk.Threads
	}
	if c.Walk.ChannelCapacity <= 0 {
		c.Walk.ChannelCapacity = def.Walk.ChannelCapacity
	}
	if c.Walk.MaxDepth < 0 {
		c.Walk.MaxDepth = 0
	}
	if c.UI.ContextLines < 0 {
		c.UI.ContextLines = def.UI.ContextLines
	}
	if c.UI.TabWidth <= 0 {
		c.UI.TabWidth = def.UI.TabWidth
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load(root string) (*Config, string, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	UserConfigPath() string
}

// configService is the concrete implementation
type configService struct {
	userPath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		userPath: filepath.Join(configDir, "filescope", "config.toml"),
	}
}

// UserConfigPath returns the per-user configuration file location
func (cs *configService) UserConfigPath() string {
	return cs.userPath
}

// Load resolves the configuration for a search root: <root>/.filescope.toml
// first, then the per-user file, then defaults. It returns the path that was
// used ("" for defaults).
func (cs *configService) Load(root string) (*Config, string, error) {
	for _, path := range []string{filepath.Join(root, FileName), cs.userPath} {
		cfg, err := cs.LoadFromPath(path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return DefaultConfig(), "", nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
