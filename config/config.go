package config

import (
	"encoding/json"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hoshinonyaruko/gridsnake/engine"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath  string  `json:"selfpath"`
	Port      string  `json:"port"`
	Blocksize int     `json:"blocksize"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MoveRate  float64 `json:"move_rate"` // seconds between ticks
	InitialX  int     `json:"initial_x"`
	InitialY  int     `json:"initial_y"`
	Seed      uint64  `json:"seed"`
	Database  string  `json:"database"`
	Sprites   string  `json:"sprites"`
}

var (
	instance *AppConfig
	once     sync.Once
	mu       sync.RWMutex
)

func defaults() *AppConfig {
	return &AppConfig{
		SelfPath:  "http://www.example.com", // Default value
		Port:      "38870",                  // Default value
		Blocksize: 20,
		Width:     17,
		Height:    15,
		MoveRate:  0.5,
		InitialX:  3,
		InitialY:  3,
		Database:  "game.db",
		Sprites:   "./sprites",
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		cfg := defaults()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			if err := saveConfig(filePath, cfg); err != nil {
				panic(err)
			}
		} else if err := loadConfig(filePath, cfg); err != nil {
			panic(err)
		}
		mu.Lock()
		instance = cfg
		mu.Unlock()
	})
	return Current()
}

// Current returns a copy of the active configuration.
func Current() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return defaults()
	}
	c := *instance
	return &c
}

// loadConfig loads the settings from the file
func loadConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(cfg)
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Reload re-reads the file on top of the defaults. A file whose game section
// does not validate is rejected and the previous config stays active.
func Reload(filePath string) (*AppConfig, error) {
	cfg := defaults()
	if err := loadConfig(filePath, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Game(); err != nil {
		return nil, err
	}
	mu.Lock()
	instance = cfg
	mu.Unlock()
	return Current(), nil
}

// Game converts the board section into a validated engine.Config.
func (c *AppConfig) Game() (engine.Config, error) {
	gc := engine.Config{
		Width:        c.Width,
		Height:       c.Height,
		TickInterval: time.Duration(math.Round(c.MoveRate * float64(time.Second))),
		InitialHead:  structs.Cell{X: c.InitialX, Y: c.InitialY},
		Seed:         c.Seed,
	}
	return gc, gc.Validate()
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	c := Current()
	switch key {
	case "selfpath":
		return c.SelfPath
	case "port":
		return c.Port
	case "blocksize":
		return c.Blocksize
	case "width":
		return c.Width
	case "height":
		return c.Height
	case "move_rate":
		return c.MoveRate
	case "database":
		return c.Database
	case "sprites":
		return c.Sprites
	default:
		return ""
	}
}

// Watch reloads the file whenever it is written and hands the new config to
// onChange. It blocks until done is closed.
func Watch(filePath string, onChange func(*AppConfig), done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors replace files, so watch the directory.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}
	target := filepath.Clean(filePath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				cfg, err := Reload(filePath)
				if err != nil {
					log.Printf("config reload rejected: %v", err)
					continue
				}
				log.Printf("config reloaded from %s", filePath)
				onChange(cfg)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("config watcher error:", err)
		case <-done:
			return nil
		}
	}
}
