// File: config/config.go
// Author: momentics <momentics@gmail.com>
//
// Service-level configuration resolved before a wait set is built.
// File and environment values feed the facade; the wait set core never
// reads configuration on its own.

package config

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Service holds the tunables for one wait set runtime.
type Service struct {
	// Capacity is the attachment capacity passed to the builder.
	Capacity int `mapstructure:"capacity"`
	// SignalHandling selects "disabled" or "termination".
	SignalHandling string `mapstructure:"signal_handling"`
	// EnableMetrics wires prometheus collectors into the wait set.
	EnableMetrics bool `mapstructure:"enable_metrics"`
	// EnableDebug wires the debug probe registry.
	EnableDebug bool `mapstructure:"enable_debug"`
	// PinCPU pins the dispatch goroutine's thread to the given CPU.
	// Negative values disable pinning.
	PinCPU int `mapstructure:"pin_cpu"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Service {
	return &Service{
		Capacity:       256,
		SignalHandling: "disabled",
		EnableMetrics:  true,
		EnableDebug:    true,
		PinCPU:         -1,
	}
}

// Load resolves the service configuration from config.yaml. Search
// order: dir when non-empty, the working directory, then
// ~/.hioload-waitset. Environment variables prefixed HIOLOAD_ override
// file values. A missing file yields defaults.
func Load(dir string) (*Service, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".hioload-waitset"))
	}
	v.SetEnvPrefix("hioload")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("capacity", def.Capacity)
	v.SetDefault("signal_handling", def.SignalHandling)
	v.SetDefault("enable_metrics", def.EnableMetrics)
	v.SetDefault("enable_debug", def.EnableDebug)
	v.SetDefault("pin_cpu", def.PinCPU)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Service{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the facade cannot honor.
func (s *Service) Validate() error {
	if s.Capacity < 1 {
		return errors.Errorf("capacity %d is below 1", s.Capacity)
	}
	switch s.SignalHandling {
	case "disabled", "termination":
	default:
		return errors.Errorf("unknown signal handling mode %q", s.SignalHandling)
	}
	return nil
}
