// Package config loads the ledd daemon configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration, loaded from YAML.
//
// Every section is optional: with an empty file ledd serves TCP on the
// default port, drives a log-only output, and journals nothing.
type Config struct {
	// Listen is the TCP address for the line protocol.
	Listen string `yaml:"listen"`

	// Serial attaches a serial port as an additional line stream.
	Serial *SerialConfig `yaml:"serial,omitempty"`

	// GPIO selects the physical output. Absent means log-only output.
	GPIO *GPIOConfig `yaml:"gpio,omitempty"`

	// MQTT layers the wireless command relay over the same grammar.
	MQTT *MQTTConfig `yaml:"mqtt,omitempty"`

	// Journal enables the SQLite command journal.
	Journal *JournalConfig `yaml:"journal,omitempty"`
}

// SerialConfig defines the serial transport.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// GPIOConfig defines the output line.
type GPIOConfig struct {
	Chip      string `yaml:"chip"`
	Line      int    `yaml:"line"`
	ActiveLow bool   `yaml:"active_low"`
}

// MQTTConfig defines the broker connection for the relay.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
}

// JournalConfig defines the command journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Listen: ":7600"}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":7600"
	}
	if c.Serial != nil && c.Serial.Baud == 0 {
		c.Serial.Baud = 115200
	}
	if c.GPIO != nil && c.GPIO.Chip == "" {
		c.GPIO.Chip = "gpiochip0"
	}
	if c.MQTT != nil && c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "ledd"
	}
}

func (c *Config) validate() error {
	if c.Serial != nil {
		if c.Serial.Port == "" {
			return fmt.Errorf("config: serial.port is required when serial is set")
		}
		if c.Serial.Baud < 0 {
			return fmt.Errorf("config: serial.baud must be positive, got %d", c.Serial.Baud)
		}
	}
	if c.GPIO != nil && c.GPIO.Line < 0 {
		return fmt.Errorf("config: gpio.line must be non-negative, got %d", c.GPIO.Line)
	}
	if c.MQTT != nil && c.MQTT.Broker == "" {
		return fmt.Errorf("config: mqtt.broker is required when mqtt is set")
	}
	if c.Journal != nil && c.Journal.Path == "" {
		return fmt.Errorf("config: journal.path is required when journal is set")
	}
	return nil
}
