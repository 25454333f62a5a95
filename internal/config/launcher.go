package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

// LauncherFileName is the launcher configuration file inside the launcher directory
const LauncherFileName = "launcher.toml"

// EnvPrefix prefixes environment variables overriding launcher.toml values
const EnvPrefix = "LAUNCHER_"

// Launcher defaults
const (
	DefaultDistributionURL      = "https://oblivion.farfania.net/distribution.json"
	DefaultMojangStatusURL      = "https://status.mojang.com/check"
	DefaultMojangIntervalSec    = 30
	DefaultNetworkIntervalSec   = 30
	DefaultServerIntervalSec    = 3000
	DefaultWorkerCommand        = "assetexec"
	DefaultNewsTimeoutMillis    = 2500
	DefaultNetworkPingBatchSize = 4
)

// Launcher holds settings shipped with the launcher rather than chosen by the user
type Launcher struct {
	DistributionURL    string   `toml:"distribution_url"`
	MojangStatusURL    string   `toml:"mojang_status_url"`
	MojangIntervalSec  int      `toml:"mojang_interval_sec"`
	NetworkIntervalSec int      `toml:"network_interval_sec"`
	ServerIntervalSec  int      `toml:"server_interval_sec"`
	NewsTimeoutMillis  int      `toml:"news_timeout_ms"`
	PingConcurrency    int      `toml:"ping_concurrency"`
	WorkerCommand      string   `toml:"worker_command"`
	WorkerArgs         []string `toml:"worker_args"`
	DiscordToken       string   `toml:"discord_token"`
	DevMode            bool     `toml:"dev_mode"`
	Debug              bool     `toml:"debug"`
}

// DefaultLauncher returns the built-in launcher configuration
func DefaultLauncher() Launcher {
	return Launcher{
		DistributionURL:    DefaultDistributionURL,
		MojangStatusURL:    DefaultMojangStatusURL,
		MojangIntervalSec:  DefaultMojangIntervalSec,
		NetworkIntervalSec: DefaultNetworkIntervalSec,
		ServerIntervalSec:  DefaultServerIntervalSec,
		NewsTimeoutMillis:  DefaultNewsTimeoutMillis,
		PingConcurrency:    DefaultNetworkPingBatchSize,
		WorkerCommand:      DefaultWorkerCommand,
	}
}

// LoadLauncher reads launcher.toml from dir, falling back to defaults when
// the file is absent. A .env file in dir is loaded into the environment
// first, then LAUNCHER_* variables override file values.
func LoadLauncher(dir string) (Launcher, error) {
	cfg := DefaultLauncher()

	envPath := filepath.Join(dir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", envPath, err)
	}

	path := filepath.Join(dir, LauncherFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return DefaultLauncher(), fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// SaveLauncher writes cfg to launcher.toml in dir
func SaveLauncher(dir string, cfg Launcher) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode launcher config: %w", err)
	}
	path := filepath.Join(dir, LauncherFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Launcher) {
	if v, ok := lookupEnv("DISTRIBUTION_URL"); ok {
		cfg.DistributionURL = v
	}
	if v, ok := lookupEnv("MOJANG_STATUS_URL"); ok {
		cfg.MojangStatusURL = v
	}
	if v, ok := lookupEnv("WORKER_COMMAND"); ok {
		cfg.WorkerCommand = v
	}
	if v, ok := lookupEnv("WORKER_ARGS"); ok {
		cfg.WorkerArgs = strings.Fields(v)
	}
	if v, ok := lookupEnv("DISCORD_TOKEN"); ok {
		cfg.DiscordToken = v
	}
	if v, ok := lookupEnv("DEV_MODE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevMode = b
		}
	}
	if v, ok := lookupEnv("DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c *Launcher) normalize() {
	def := DefaultLauncher()
	if c.DistributionURL == "" {
		c.DistributionURL = def.DistributionURL
	}
	if c.MojangStatusURL == "" {
		c.MojangStatusURL = def.MojangStatusURL
	}
	if c.MojangIntervalSec <= 0 {
		c.MojangIntervalSec = def.MojangIntervalSec
	}
	if c.NetworkIntervalSec <= 0 {
		c.NetworkIntervalSec = def.NetworkIntervalSec
	}
	if c.ServerIntervalSec <= 0 {
		c.ServerIntervalSec = def.ServerIntervalSec
	}
	if c.NewsTimeoutMillis <= 0 {
		c.NewsTimeoutMillis = def.NewsTimeoutMillis
	}
	if c.PingConcurrency <= 0 {
		c.PingConcurrency = def.PingConcurrency
	}
	if c.WorkerCommand == "" {
		c.WorkerCommand = def.WorkerCommand
	}
}

// MojangInterval returns the Mojang status poll interval
func (c Launcher) MojangInterval() time.Duration {
	return time.Duration(c.MojangIntervalSec) * time.Second
}

// NetworkInterval returns the network status poll interval
func (c Launcher) NetworkInterval() time.Duration {
	return time.Duration(c.NetworkIntervalSec) * time.Second
}

// ServerInterval returns the selected server poll interval
func (c Launcher) ServerInterval() time.Duration {
	return time.Duration(c.ServerIntervalSec) * time.Second
}

// NewsTimeout returns the news fetch timeout
func (c Launcher) NewsTimeout() time.Duration {
	return time.Duration(c.NewsTimeoutMillis) * time.Millisecond
}
