package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"gopkg.in/yaml.v2"
)

// WebAPIConfiguration describes the web API configuration. This structure is automatically parsed by
// loadConfiguration and values from flags, environment variables or the configuration file will be loaded.
type WebAPIConfiguration struct {
	Config struct {
		Path string `conf:"default:foxfaps.yml" yaml:"-"`
	}
	Web struct {
		APIHost         string        `conf:"default:127.0.0.1:3000" yaml:"api_host"`
		ReadTimeout     time.Duration `conf:"default:5s" yaml:"read_timeout"`
		WriteTimeout    time.Duration `conf:"default:5s" yaml:"write_timeout"`
		ShutdownTimeout time.Duration `conf:"default:5s" yaml:"shutdown_timeout"`
	} `yaml:"web"`
	Debug bool `yaml:"debug"`
	DB    struct {
		// an empty filename selects database.db inside the .foxfaps directory of the user's home
		Filename    string        `yaml:"filename"`
		BusyTimeout time.Duration `conf:"default:5s" yaml:"busy_timeout"`
	} `yaml:"db"`
}

// loadConfiguration creates a WebAPIConfiguration starting from flags, environment variables and the
// configuration file. It works by loading environment variables first, then updating the config using
// command line flags, finally loading the configuration file (specified in WebAPIConfiguration.Config.Path).
// So, CLI parameters will override the environment, and the configuration file will override everything.
// Note that the configuration file can be specified only via CLI or environment variable.
func loadConfiguration(args []string) (WebAPIConfiguration, error) {
	var cfg WebAPIConfiguration

	// try to load configuration from environment variables and command line switches
	if err := conf.Parse(args, "CFG", &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("CFG", &cfg)
			if err != nil {
				return cfg, fmt.Errorf("generating config usage: %w", err)
			}
			fmt.Println(usage) //nolint:forbidigo
			return cfg, conf.ErrHelpWanted
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// override values from YAML if specified and if it exists (useful in k8s/compose)
	fp, err := os.Open(cfg.Config.Path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("can't read the config file, while it exists: %w", err)
	} else if err == nil {
		yamlFile, err := io.ReadAll(fp)
		_ = fp.Close()
		if err != nil {
			return cfg, fmt.Errorf("can't read config file: %w", err)
		}
		if err = yaml.Unmarshal(yamlFile, &cfg); err != nil {
			return cfg, fmt.Errorf("can't unmarshal config file: %w", err)
		}
	}

	return cfg, nil
}
