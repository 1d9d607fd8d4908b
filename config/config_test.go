package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := LoadConfig(path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.Port != "38870" || cfg.Width != 17 || cfg.Height != 15 {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if GetConfigValue("blocksize").(int) != 20 {
		t.Errorf("blocksize = %v", GetConfigValue("blocksize"))
	}
}

func TestGameConversion(t *testing.T) {
	gc, err := defaults().Game()
	if err != nil {
		t.Fatal(err)
	}
	if gc.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %s", gc.TickInterval)
	}
	if gc.InitialHead != (structs.Cell{X: 3, Y: 3}) || gc.Width != 17 || gc.Height != 15 {
		t.Errorf("Game() = %+v", gc)
	}

	bad := defaults()
	bad.InitialX = 40
	if _, err := bad.Game(); err == nil {
		t.Error("head outside grid accepted")
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"width": 30, "height": 20, "move_rate": 0.25}`)
	cfg, err := Reload(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 30 || cfg.Port != "38870" {
		t.Errorf("Reload() = %+v", cfg)
	}
	if GetConfigValue("width").(int) != 30 {
		t.Errorf("width = %v", GetConfigValue("width"))
	}

	writeFile(t, path, `{"width": 0}`)
	if _, err := Reload(path); err == nil {
		t.Fatal("invalid config accepted")
	}
	if Current().Width != 30 {
		t.Errorf("rejected reload replaced config: width %d", Current().Width)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"width": 10, "height": 10}`)

	changed := make(chan *AppConfig, 4)
	done := make(chan struct{})
	defer close(done)
	go Watch(path, func(c *AppConfig) {
		select {
		case changed <- c:
		default:
		}
	}, done)

	// keep writing until the watcher has registered and reports a change
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-changed:
			if c.Width != 12 {
				t.Errorf("reloaded width = %d, want 12", c.Width)
			}
			return
		case <-tick.C:
			writeFile(t, path, `{"width": 12, "height": 10}`)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
