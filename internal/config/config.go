package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFile is the fixed name of the project configuration file. Its
	// presence at a directory root is what makes that directory a project.
	ConfigFile = "makebio.toml"

	CurrentConfigVersion = "1"
)

var (
	ErrNotFound      = errors.New("makebio.toml not found")
	ErrCorruptConfig = errors.New("corrupt project configuration")
)

// Analysis is one named, date-prefixed unit of work with paired directories
// under control/ and results/.
type Analysis struct {
	Name    string `toml:"name"`
	Created string `toml:"created"`
	Dir     string `toml:"dir"`
	Frozen  bool   `toml:"frozen,omitempty"`
}

// Data is one named, date-prefixed dataset directory under data/.
type Data struct {
	Name    string `toml:"name"`
	Created string `toml:"created"`
	Dir     string `toml:"dir"`
	Frozen  bool   `toml:"frozen,omitempty"`
}

// Links records the symlink targets chosen at init time. Empty values mean
// the corresponding entry was created as a plain directory.
type Links struct {
	Work string `toml:"work,omitempty"`
	Data string `toml:"data,omitempty"`
}

// Settings are the init-time policy choices later operations must agree with.
type Settings struct {
	InitGit       bool `toml:"init_git"`
	AllowDangling bool `toml:"allow_dangling"`
}

// Config is the single source of truth for a project. On-disk state under
// the project root must always be derivable from it.
type Config struct {
	Version     string     `toml:"version"`
	Name        string     `toml:"name"`
	Created     string     `toml:"created"`
	Author      string     `toml:"author,omitempty"`
	Email       string     `toml:"email,omitempty"`
	Description string     `toml:"description,omitempty"`
	Settings    Settings   `toml:"settings"`
	Links       Links      `toml:"links"`
	Analyses    []Analysis `toml:"analysis"`
	Datasets    []Data     `toml:"data"`
}

// Load reads and validates the configuration at the given project root.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, root)
		}
		return nil, err
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %q", ErrCorruptConfig, path, undecoded[0].String())
	}

	migrate(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptConfig, path, err)
	}

	return &cfg, nil
}

// Save persists the configuration atomically: the full document is written
// to a temp file in the same directory and renamed over the previous one, so
// a crash mid-write never corrupts an existing config.
func Save(root string, cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = CurrentConfigVersion
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	path := filepath.Join(root, ConfigFile)
	tmp, err := os.CreateTemp(root, ConfigFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp config: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// FindAnalysis returns a pointer into the analyses list, or nil.
func (c *Config) FindAnalysis(name string) *Analysis {
	for i := range c.Analyses {
		if c.Analyses[i].Name == name {
			return &c.Analyses[i]
		}
	}
	return nil
}

// FindData returns a pointer into the data list, or nil.
func (c *Config) FindData(name string) *Data {
	for i := range c.Datasets {
		if c.Datasets[i].Name == name {
			return &c.Datasets[i]
		}
	}
	return nil
}

// HasName reports whether any analysis or data record uses the name.
func (c *Config) HasName(name string) bool {
	return c.FindAnalysis(name) != nil || c.FindData(name) != nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return errors.New("missing required field: name")
	}

	seen := make(map[string]bool, len(c.Analyses)+len(c.Datasets))
	for _, a := range c.Analyses {
		if a.Name == "" || a.Dir == "" {
			return fmt.Errorf("analysis record missing name or dir (name=%q dir=%q)", a.Name, a.Dir)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate record name %q", a.Name)
		}
		seen[a.Name] = true
	}
	for _, d := range c.Datasets {
		if d.Name == "" || d.Dir == "" {
			return fmt.Errorf("data record missing name or dir (name=%q dir=%q)", d.Name, d.Dir)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate record name %q", d.Name)
		}
		seen[d.Name] = true
	}

	return nil
}

func migrate(c *Config) {
	switch c.Version {
	case "":
		c.Version = CurrentConfigVersion
	case CurrentConfigVersion:
		// no-op
	default:
		// Keep unknown versions untouched; validate still applies.
	}
}
