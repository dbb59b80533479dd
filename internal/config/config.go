package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPort           = 8000
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 5 * time.Second
	DefaultPollInterval   = 2 * time.Second
	DefaultMetricsAddr    = ":9402"
	DefaultRedisChannel   = "tpg.readings"
)

type Config struct {
	Controller ControllerConfig `toml:"controller"`
	Poll       PollConfig       `toml:"poll"`
	Redis      RedisConfig      `toml:"redis"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

type ControllerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Model     string `toml:"model"`
	Transport string `toml:"transport"`
	// Serial device path, used only with transport = "serial".
	Device         string `toml:"device"`
	ConnectTimeout string `toml:"connect_timeout"`
	ReadTimeout    string `toml:"read_timeout"`

	// Parsed forms of the duration strings above.
	ConnectTimeoutD time.Duration `toml:"-"`
	ReadTimeoutD    time.Duration `toml:"-"`
}

type PollConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
	Channels []int  `toml:"channels"`

	IntervalD time.Duration `toml:"-"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	applyDefaults(&cfg)
	if err := parseDurations(&cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Controller.Port == 0 {
		cfg.Controller.Port = DefaultPort
	}
	if cfg.Controller.Model == "" {
		cfg.Controller.Model = "TPG361"
	}
	if cfg.Controller.Transport == "" {
		cfg.Controller.Transport = "ethernet"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = DefaultRedisChannel
	}
	if len(cfg.Poll.Channels) == 0 {
		cfg.Poll.Channels = []int{1}
	}
}

func parseDurations(cfg *Config) error {
	var err error
	if cfg.Controller.ConnectTimeoutD, err = parseDuration(cfg.Controller.ConnectTimeout, DefaultConnectTimeout); err != nil {
		return fmt.Errorf("connect_timeout: %w", err)
	}
	if cfg.Controller.ReadTimeoutD, err = parseDuration(cfg.Controller.ReadTimeout, DefaultReadTimeout); err != nil {
		return fmt.Errorf("read_timeout: %w", err)
	}
	if cfg.Poll.IntervalD, err = parseDuration(cfg.Poll.Interval, DefaultPollInterval); err != nil {
		return fmt.Errorf("poll interval: %w", err)
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", raw)
	}
	return d, nil
}

func Validate(cfg Config) error {
	switch strings.ToLower(cfg.Controller.Transport) {
	case "ethernet":
		if strings.TrimSpace(cfg.Controller.Host) == "" {
			return fmt.Errorf("controller config missing host")
		}
	case "serial":
		if strings.TrimSpace(cfg.Controller.Device) == "" {
			return fmt.Errorf("controller config missing device")
		}
	default:
		return fmt.Errorf("unknown transport %q", cfg.Controller.Transport)
	}
	if cfg.Controller.Port < 0 || cfg.Controller.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Controller.Port)
	}
	for _, ch := range cfg.Poll.Channels {
		if ch < 1 {
			return fmt.Errorf("invalid poll channel %d", ch)
		}
	}
	if cfg.Redis.Enabled && strings.TrimSpace(cfg.Redis.Addr) == "" {
		return fmt.Errorf("redis enabled without addr")
	}
	return nil
}
