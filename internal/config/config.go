// Package config loads clickmacro settings from defaults, an optional YAML
// file, an optional .env file and command-line flags, in that order.
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable selecting the YAML file.
const EnvConfigPath = "CLICKMACRO_CONFIG"

// DefaultConfigPath is used when neither the flag nor the environment names a file.
const DefaultConfigPath = "config.yaml"

// Config represents the complete application configuration
type Config struct {
	Replay struct {
		DebounceWindow         time.Duration `yaml:"debounce_window"`
		StepPause              time.Duration `yaml:"step_pause"`
		ModifierReleaseTimeout time.Duration `yaml:"modifier_release_timeout"`
	} `yaml:"replay"`
	Logging struct {
		Directory   string `yaml:"directory"`
		Level       string `yaml:"level"`
		File        bool   `yaml:"file"`
		OpenOnStart bool   `yaml:"open_on_start"`
	} `yaml:"logging"`
	Notifications struct {
		Enabled       bool `yaml:"enabled"`
		ShowRecording bool `yaml:"show_recording"`
		ShowReplay    bool `yaml:"show_replay"`
	} `yaml:"notifications"`
	Instance struct {
		Single bool `yaml:"single"`
	} `yaml:"instance"`

	// Source is the YAML file that was loaded, empty if none.
	Source string `yaml:"-"`
	// ShowVersion is set by the -version flag.
	ShowVersion bool `yaml:"-"`
}

// DefaultConfig returns a configuration with the stock tuning values
func DefaultConfig() *Config {
	config := &Config{}

	config.Replay.DebounceWindow = 100 * time.Millisecond
	config.Replay.StepPause = 10 * time.Millisecond
	config.Replay.ModifierReleaseTimeout = 2 * time.Second

	config.Logging.Directory = "logs"
	config.Logging.Level = "info"
	config.Logging.File = true
	config.Logging.OpenOnStart = false

	config.Notifications.Enabled = false
	config.Notifications.ShowRecording = true
	config.Notifications.ShowReplay = true

	config.Instance.Single = true

	return config
}

// Load builds the configuration for the given command-line arguments
// (without the program name). Flags win over the file, the file wins over
// defaults.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	config := DefaultConfig()

	fs, values := newFlagSet(config)
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "invalid arguments")
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}

	path, explicit := resolvePath(values.configPath)
	if _, err := os.Stat(path); err == nil {
		if err := loadConfigFromFile(config, path); err != nil {
			return nil, errors.Wrap(err, "failed to load config file")
		}
		config.Source = path
	} else if explicit {
		return nil, errors.Wrapf(err, "config file %s", path)
	}

	overrideWithFlags(config, fs, values)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return config, nil
}

func resolvePath(flagValue string) (string, bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, true
	}
	return DefaultConfigPath, false
}

// loadConfigFromFile loads configuration from a YAML file
func loadConfigFromFile(config *Config, filename string) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

type flagValues struct {
	configPath     string
	debounce       time.Duration
	stepPause      time.Duration
	releaseTimeout time.Duration
	logLevel       string
	logDir         string
	notify         bool
}

func newFlagSet(defaults *Config) (*flag.FlagSet, *flagValues) {
	v := &flagValues{}
	fs := flag.NewFlagSet("clickmacro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&v.configPath, "config", "", "Path to the YAML configuration file (default $"+EnvConfigPath+" or "+DefaultConfigPath+")")
	fs.DurationVar(&v.debounce, "debounce", defaults.Replay.DebounceWindow, "Echo suppression window after a synthetic action")
	fs.DurationVar(&v.stepPause, "step-pause", defaults.Replay.StepPause, "Pause between move, press and release of a replayed click")
	fs.DurationVar(&v.releaseTimeout, "release-timeout", defaults.Replay.ModifierReleaseTimeout, "How long a replay waits for the hotkey modifiers to be released (0 disables)")
	fs.StringVar(&v.logLevel, "log-level", defaults.Logging.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&v.logDir, "log-dir", defaults.Logging.Directory, "Directory for log files")
	fs.BoolVar(&v.notify, "notify", defaults.Notifications.Enabled, "Show desktop notifications")
	fs.BoolVar(&defaults.ShowVersion, "version", false, "Print the version and exit")

	return fs, v
}

// overrideWithFlags applies the flags that were given on the command line
// over configuration file settings
func overrideWithFlags(config *Config, fs *flag.FlagSet, v *flagValues) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debounce":
			config.Replay.DebounceWindow = v.debounce
		case "step-pause":
			config.Replay.StepPause = v.stepPause
		case "release-timeout":
			config.Replay.ModifierReleaseTimeout = v.releaseTimeout
		case "log-level":
			config.Logging.Level = v.logLevel
		case "log-dir":
			config.Logging.Directory = v.logDir
		case "notify":
			config.Notifications.Enabled = v.notify
		}
	})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if config.Replay.DebounceWindow <= 0 {
		return errors.Errorf("debounce window must be positive, got: %s", config.Replay.DebounceWindow)
	}

	if config.Replay.StepPause < 0 {
		return errors.Errorf("step pause must be non-negative, got: %s", config.Replay.StepPause)
	}

	if config.Replay.ModifierReleaseTimeout < 0 {
		return errors.Errorf("modifier release timeout must be non-negative, got: %s", config.Replay.ModifierReleaseTimeout)
	}

	if _, err := logrus.ParseLevel(config.Logging.Level); err != nil {
		return errors.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.Logging.File && config.Logging.Directory == "" {
		return errors.New("log directory cannot be empty when file logging is enabled")
	}

	return nil
}

// PrintUsage writes the flag documentation to w.
func PrintUsage(w io.Writer) {
	fs, _ := newFlagSet(DefaultConfig())
	fs.SetOutput(w)
	fs.PrintDefaults()
}
