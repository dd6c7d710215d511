package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const FileName = "config.json"

type Config struct {
	Listen                    string `json:"listen"`
	AllowOrigins              string `json:"allowOrigins"`
	ClockSeconds              int    `json:"clockSeconds"`
	MatchmakingIntervalMillis int    `json:"matchmakingIntervalMillis"`
	ArchivePath               string `json:"archivePath"`
	ArchiveParallel           int64  `json:"archiveParallel"`
}

func Default() Config {
	return Config{
		Listen:                    ":3000",
		AllowOrigins:              "http://localhost:5173",
		ClockSeconds:              600,
		MatchmakingIntervalMillis: 1000,
		ArchivePath:               "archive.parquet",
		ArchiveParallel:           4,
	}
}

func (c Config) Clock() time.Duration {
	return time.Duration(c.ClockSeconds) * time.Second
}

func (c Config) MatchmakingInterval() time.Duration {
	return time.Duration(c.MatchmakingIntervalMillis) * time.Millisecond
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.Listen == "" {
		errs = multierror.Append(errs, errors.New("listen address is empty"))
	}
	if c.ClockSeconds <= 0 {
		errs = multierror.Append(errs, errors.Errorf("clockSeconds must be positive, got %d", c.ClockSeconds))
	}
	if c.MatchmakingIntervalMillis <= 0 {
		errs = multierror.Append(errs, errors.Errorf("matchmakingIntervalMillis must be positive, got %d", c.MatchmakingIntervalMillis))
	}
	if c.ArchivePath == "" {
		errs = multierror.Append(errs, errors.New("archivePath is empty"))
	}
	if c.ArchiveParallel <= 0 {
		errs = multierror.Append(errs, errors.Errorf("archiveParallel must be positive, got %d", c.ArchiveParallel))
	}
	return errs.ErrorOrNil()
}

// FindConfigPath walks up from the working directory looking for config.json.
func FindConfigPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}
	dir := cwd
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.Errorf("%s not found from %s", FileName, cwd)
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Resolve loads path when given, otherwise the nearest config.json, and falls
// back to the defaults when there is none.
func Resolve(path string) (Config, error) {
	if path == "" {
		found, err := FindConfigPath()
		if err != nil {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}
