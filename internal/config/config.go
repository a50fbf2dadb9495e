// Package config loads the simulator's TOML configuration file: memory
// region layout and execution limits (SPEC_FULL.md's ambient config
// section). Adapted from the arm_emulator example's config package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/rv32sim/rv32sim/pkg/rv32"
)

// Config is the simulator's on-disk configuration.
type Config struct {
	Memory struct {
		TextBegin  uint32 `toml:"text_begin"`
		TextEnd    uint32 `toml:"text_end"`
		DataBegin  uint32 `toml:"data_begin"`
		DataEnd    uint32 `toml:"data_end"`
		StackSize  uint32 `toml:"stack_size"`
		StackEnd   uint32 `toml:"stack_end"`
		KDataBegin uint32 `toml:"kdata_begin"`
		KDataEnd   uint32 `toml:"kdata_end"`
	} `toml:"memory"`

	Execution struct {
		MaxCycles     uint64 `toml:"max_cycles"`
		Notui         bool   `toml:"notui"`
		RemoteConsole string `toml:"remote_console"` // "" disables; else "host:port"
	} `toml:"execution"`
}

// DefaultConfig returns a Config matching pkg/rv32.DefaultRegions and an
// unbounded, local-console run.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.TextBegin = rv32.DefaultTextBegin
	cfg.Memory.TextEnd = rv32.DefaultTextEnd
	cfg.Memory.DataBegin = rv32.DefaultDataBegin
	cfg.Memory.DataEnd = rv32.DefaultDataEnd
	cfg.Memory.StackSize = rv32.DefaultStackSize
	cfg.Memory.StackEnd = rv32.DefaultStackEnd
	cfg.Memory.KDataBegin = rv32.DefaultKDataBegin
	cfg.Memory.KDataEnd = rv32.DefaultKDataEnd
	cfg.Execution.MaxCycles = 0 // loaded and saved only; nothing in this module applies it as a cap
	cfg.Execution.Notui = false
	cfg.Execution.RemoteConsole = ""
	return cfg
}

// Regions builds the pkg/rv32.Region table this configuration describes.
func (c *Config) Regions() []rv32.Region {
	return []rv32.Region{
		rv32.NewRegion("text", c.Memory.TextBegin, c.Memory.TextEnd),
		rv32.NewRegion("data", c.Memory.DataBegin, c.Memory.DataEnd),
		rv32.NewRegion("stack", c.Memory.StackEnd-c.Memory.StackSize+1, c.Memory.StackEnd),
		rv32.NewRegion("kdata", c.Memory.KDataBegin, c.Memory.KDataEnd),
	}
}

// GetConfigPath returns the platform-specific configuration file path.
func GetConfigPath() string {
	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32sim")
	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "rv32sim.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32sim")
	default:
		return "rv32sim.toml"
	}
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "rv32sim.toml"
	}
	return filepath.Join(configDir, "rv32sim.toml")
}

// Load reads configuration from the default path, falling back to
// DefaultConfig if the file does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path, falling back to DefaultConfig
// if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes the configuration to path in TOML form.
func (c *Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("config: failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	return nil
}
