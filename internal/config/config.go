package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir     = "~/.local/share/linkshelf"
	DefaultArchiveFile = "archive.json"
	DefaultTreeDB      = "tree.db"
)

// Config holds runtime settings. Precedence: env > YAML file > defaults.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	ArchiveFile string `yaml:"archive_file"` // relative paths resolve against DataDir
	TreeDB      string `yaml:"tree_db"`      // relative paths resolve against DataDir

	LogLevel  string `yaml:"log_level"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"pretty_log"` // true => zap dev (color), false => zap prod (JSON)
}

// Load reads .env (if present), the YAML file named by LINKSHELF_CONFIG
// (if set) and LINKSHELF_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:     DefaultDataDir,
		ArchiveFile: DefaultArchiveFile,
		TreeDB:      DefaultTreeDB,
		LogLevel:    "warn",
		PrettyLog:   true,
	}

	if path := os.Getenv("LINKSHELF_CONFIG"); path != "" {
		if err := cfg.loadFile(ExpandHome(path)); err != nil {
			return nil, err
		}
	}

	cfg.DataDir = getenv("LINKSHELF_DATA_DIR", cfg.DataDir)
	cfg.ArchiveFile = getenv("LINKSHELF_ARCHIVE_FILE", cfg.ArchiveFile)
	cfg.TreeDB = getenv("LINKSHELF_TREE_DB", cfg.TreeDB)
	cfg.LogLevel = getenv("LINKSHELF_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLog = getenvBool("LINKSHELF_PRETTY_LOG", cfg.PrettyLog)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}
	return nil
}

// ArchivePath returns the absolute location of the archive document
func (c *Config) ArchivePath() string {
	return c.resolve(c.ArchiveFile)
}

// TreeDBPath returns the absolute location of the tree database
func (c *Config) TreeDBPath() string {
	return c.resolve(c.TreeDB)
}

func (c *Config) resolve(p string) string {
	p = ExpandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ExpandHome(c.DataDir), p)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func getenv(key, def string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
