package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tpgctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[controller]
host = "tpg361.lab.example"
port = 8001
model = "TPG362"
transport = "ethernet"
connect_timeout = "3s"
read_timeout = "2s"

[poll]
enabled = true
interval = "500ms"
channels = [1, 2]

[redis]
enabled = true
addr = "127.0.0.1:6379"
channel = "lab.tpg"

[metrics]
enabled = true
addr = ":9900"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Controller.Host != "tpg361.lab.example" || cfg.Controller.Port != 8001 {
		t.Fatalf("unexpected controller config: %+v", cfg.Controller)
	}
	if cfg.Controller.ConnectTimeoutD != 3*time.Second || cfg.Controller.ReadTimeoutD != 2*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.Controller)
	}
	if cfg.Poll.IntervalD != 500*time.Millisecond || len(cfg.Poll.Channels) != 2 {
		t.Fatalf("unexpected poll config: %+v", cfg.Poll)
	}
	if cfg.Redis.Channel != "lab.tpg" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Metrics.Addr != ":9900" {
		t.Fatalf("unexpected metrics config: %+v", cfg.Metrics)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[controller]
host = "192.168.1.50"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Controller.Port != DefaultPort {
		t.Fatalf("expected default port, got %d", cfg.Controller.Port)
	}
	if cfg.Controller.Model != "TPG361" || cfg.Controller.Transport != "ethernet" {
		t.Fatalf("unexpected defaults: %+v", cfg.Controller)
	}
	if cfg.Controller.ConnectTimeoutD != DefaultConnectTimeout || cfg.Controller.ReadTimeoutD != DefaultReadTimeout {
		t.Fatalf("unexpected default timeouts: %+v", cfg.Controller)
	}
	if cfg.Poll.IntervalD != DefaultPollInterval {
		t.Fatalf("unexpected default interval: %v", cfg.Poll.IntervalD)
	}
	if len(cfg.Poll.Channels) != 1 || cfg.Poll.Channels[0] != 1 {
		t.Fatalf("unexpected default channels: %v", cfg.Poll.Channels)
	}
	if cfg.Redis.Channel != DefaultRedisChannel || cfg.Metrics.Addr != DefaultMetricsAddr {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Redis, cfg.Metrics)
	}
}

func TestLoadRejectsMissingHost(t *testing.T) {
	path := writeConfig(t, `
[controller]
transport = "ethernet"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "missing host") {
		t.Fatalf("expected missing host error, got %v", err)
	}
}

func TestLoadSerialNeedsDevice(t *testing.T) {
	path := writeConfig(t, `
[controller]
transport = "serial"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "missing device") {
		t.Fatalf("expected missing device error, got %v", err)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
[controller]
host = "192.168.1.50"
read_timeout = "fast"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected duration parse error")
	}
}

func TestLoadRejectsRedisWithoutAddr(t *testing.T) {
	path := writeConfig(t, `
[controller]
host = "192.168.1.50"

[redis]
enabled = true
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "redis") {
		t.Fatalf("expected redis addr error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected load failure for missing file")
	}
}
