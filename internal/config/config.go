// Package config loads the settings of the linepipe command from a TOML file.
package config

import (
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/askiada/go-linepipe/internal/selection"
)

var (
	ErrUnknownKeys = errors.New("unknown configuration keys")
	ErrConcurrency = errors.New("concurrency must be greater than 0")
)

// Config holds the settings of a linepipe run. Command line flags override it.
type Config struct {
	// Concurrency is the number of files processed at the same time.
	Concurrency int `toml:"concurrency"`
	// InPlace rewrites the files instead of printing them.
	InPlace bool `toml:"in_place"`
	// Region restricts the pipeline to some lines, see selection.ParseRegion.
	Region string `toml:"region"`
	// Measure records the duration of every stage and prints a summary.
	Measure bool `toml:"measure"`
	// DOT is the file the pipeline graph is written to.
	DOT     string `toml:"dot"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the configuration used without file.
func Default() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
	}
}

// Load reads fileName on top of the default configuration.
func Load(fileName string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(fileName, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode %s", fileName)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return Config{}, errors.Wrapf(ErrUnknownKeys, "%s: %s", fileName, strings.Join(keys, ", "))
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid configuration %s", fileName)
	}

	return cfg, nil
}

// Validate checks the values of c.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return ErrConcurrency
	}

	_, err := selection.ParseRegion(c.Region)
	if err != nil {
		return err
	}

	return nil
}

// SelectedRegion returns the parsed region.
func (c Config) SelectedRegion() (selection.Region, error) {
	return selection.ParseRegion(c.Region)
}
