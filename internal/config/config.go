package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the full boxsteroids configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Input   InputConfig   `yaml:"input"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Game    GameConfig    `yaml:"game"`
}

// EngineConfig defines frame timing and the logical screen.
type EngineConfig struct {
	FPS             int           `yaml:"fps"`
	FirstFrameDelta time.Duration `yaml:"first_frame_delta"`
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
}

// InputConfig defines terminal key handling.
type InputConfig struct {
	HoldDuration time.Duration `yaml:"hold_duration"`
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig defines the SSH host.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// GameConfig holds gameplay tuning.
type GameConfig struct {
	Ship       ShipConfig       `yaml:"ship"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Asteroid   AsteroidConfig   `yaml:"asteroid"`
}

type ShipConfig struct {
	Speed        float64       `yaml:"speed"` // units per second
	Integrity    float64       `yaml:"integrity"`
	ShotInterval time.Duration `yaml:"shot_interval"`
}

type ProjectileConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AsteroidConfig struct {
	FlashDuration    time.Duration `yaml:"flash_duration"`
	SpawnMaxInterval time.Duration `yaml:"spawn_max_interval"`
}

// Default returns the hardcoded configuration, used if the embedded file is unreadable.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			FPS:             60,
			FirstFrameDelta: 16 * time.Millisecond,
			Width:           300,
			Height:          300,
		},
		Input:   InputConfig{HoldDuration: 120 * time.Millisecond},
		Storage: StorageConfig{DBPath: "~/.boxsteroids/scores.db"},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
			IdleTimeout: 10 * time.Minute,
		},
		Game: GameConfig{
			Ship: ShipConfig{
				Speed:        180,
				Integrity:    100,
				ShotInterval: 166 * time.Millisecond,
			},
			Projectile: ProjectileConfig{Speed: 360, Width: 8, Height: 12},
			Asteroid: AsteroidConfig{
				FlashDuration:    130 * time.Millisecond,
				SpawnMaxInterval: 666 * time.Millisecond,
			},
		},
	}
}

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.boxsteroids/config.yaml -> ./configs/config.yaml -> embedded default.
// Files are decoded over the defaults, so they only need the keys they change.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "config.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// embedded decodes the embedded default YAML.
func embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boxsteroids", filename)
}

func applyEnv(cfg *Config) {
	cfg.SSH.Host = GetEnv("SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv("SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)
	cfg.Storage.DBPath = GetEnv("BOXSTEROIDS_DB", cfg.Storage.DBPath)
}

// Validate checks values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Engine.FPS <= 0:
		return fmt.Errorf("config: engine.fps must be positive, got %d", c.Engine.FPS)
	case c.Engine.Width <= 0 || c.Engine.Height <= 0:
		return fmt.Errorf("config: engine size must be positive, got %gx%g", c.Engine.Width, c.Engine.Height)
	case c.Engine.FirstFrameDelta < 0:
		return fmt.Errorf("config: engine.first_frame_delta must not be negative")
	case c.Input.HoldDuration <= 0:
		return fmt.Errorf("config: input.hold_duration must be positive")
	}
	return nil
}
