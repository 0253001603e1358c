package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	DeviceID   string
	DeviceFile string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("JOKERPARTY_SERVER", "http://localhost:8080"),
		DeviceID:   os.Getenv("JOKERPARTY_DEVICE"),
		DeviceFile: getEnvOrDefault("JOKERPARTY_DEVICE_FILE", defaultDeviceFile()),
		Output:     "text",
	}
}

// LoadDeviceID loads the device id from file, generating and persisting a new
// one on first use. Joins are idempotent per device, so a stable id means
// rejoining a game returns the same player.
func (c *Config) LoadDeviceID() error {
	if c.DeviceID != "" {
		return nil
	}

	data, err := os.ReadFile(c.DeviceFile)
	if err == nil && len(data) > 0 {
		c.DeviceID = strings.TrimSpace(string(data))
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	c.DeviceID = uuid.NewString()

	dir := filepath.Dir(c.DeviceFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.DeviceFile, []byte(c.DeviceID), 0600)
}

func defaultDeviceFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jokerparty/device"
	}
	return filepath.Join(home, ".jokerparty", "device")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
