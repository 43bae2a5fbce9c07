// Package config resolves slate's runtime configuration and sets up logging.
//
// Precedence, highest first: command-line flags (applied by the caller),
// a project-local .slate.toml next to the data directory, SLATE_* environment
// variables, then defaults.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is slate's resolved runtime configuration.
type Config struct {
	// DataDir is the root data directory. Empty means auto-discovery via
	// boards.FindDataDir.
	DataDir string `toml:"data_dir"`
	// LogFile is the rotating log file path. Empty means {DataDir}/slate.log.
	LogFile string `toml:"log_file"`
	// NoColor disables styled terminal output.
	NoColor bool `toml:"no_color"`
}

// LocalFileName is the project-local override file, looked up in the
// working directory.
const LocalFileName = ".slate.toml"

// Load resolves configuration from environment variables and an optional
// .slate.toml in the working directory. Local file values win over the
// environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SLATE")
	v.AutomaticEnv()
	v.SetDefault("data_dir", "")
	v.SetDefault("log_file", "")
	v.SetDefault("no_color", false)

	cfg := &Config{
		DataDir: v.GetString("data_dir"),
		LogFile: v.GetString("log_file"),
		NoColor: v.GetBool("no_color"),
	}

	if _, err := os.Stat(LocalFileName); err == nil {
		if _, err := toml.DecodeFile(LocalFileName, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", LocalFileName, err)
		}
	}
	return cfg, nil
}

// SetupLogging routes the standard logger to a rotating file under the data
// directory. Store-layer warnings (index healing, absorbed write failures)
// land here instead of the user's terminal.
func SetupLogging(cfg *Config, dataDir string) {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(dataDir, "slate.log")
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	})
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("slate ")
}
