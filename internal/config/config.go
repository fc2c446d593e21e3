// Package config loads settings for both binaries from configs/config.yml,
// ENETIO_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ENETIO"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Device DeviceConfig `mapstructure:"device"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Panel  PanelConfig  `mapstructure:"panel"`
	MQTT   MQTTConfig   `mapstructure:"mqtt"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DeviceConfig configures the simulated controller.
type DeviceConfig struct {
	Port      string        `mapstructure:"port"`
	DBPath    string        `mapstructure:"db_path"`
	SimTick   time.Duration `mapstructure:"sim_tick"`
	Automatic bool          `mapstructure:"automatic"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// PanelConfig configures the control panel client.
type PanelConfig struct {
	DeviceURL       string        `mapstructure:"device_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	AutoRefresh     bool          `mapstructure:"auto_refresh"`
}

type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	UseTLS   bool   `mapstructure:"use_tls"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Topic    string `mapstructure:"topic"`
	QoS      byte   `mapstructure:"qos"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("device.port", "8080")
	v.SetDefault("device.db_path", "app.db")
	v.SetDefault("device.sim_tick", time.Second)
	v.SetDefault("device.automatic", false)

	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("panel.device_url", "http://localhost:8080")
	v.SetDefault("panel.refresh_interval", 500*time.Millisecond)
	v.SetDefault("panel.auto_refresh", true)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.host", "localhost")
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.topic", "enet_io/panel")
	v.SetDefault("mqtt.qos", 0)
}

// flagBindings maps viper keys to the flags that override them.
var flagBindings = map[string]string{
	"log.level":              "log-level",
	"device.port":            "port",
	"device.db_path":         "db",
	"device.automatic":       "automatic",
	"panel.device_url":       "device-url",
	"panel.refresh_interval": "refresh",
	"panel.auto_refresh":     "auto-refresh",
	"mqtt.enabled":           "mqtt",
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "Path to config file (default: configs/config.yml)")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.StringP("port", "p", "", "Device HTTP port")
	fs.String("db", "", "Device SQLite database path")
	fs.Bool("automatic", false, "Start the device in automatic speed mode")
	fs.StringP("device-url", "d", "", "Base URL of the device the panel talks to")
	fs.Duration("refresh", 0, "Speed refresh interval")
	fs.Bool("auto-refresh", true, "Start the periodic speed refresh after bootstrap")
	fs.Bool("mqtt", false, "Mirror panel changes to MQTT")
	return fs
}

// Load parses args and merges them over the config file and environment.
func Load(name string, args []string) (*Config, error) {
	fs := newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range flagBindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// readConfigFile reads an explicit --config file, or configs/config.yml if
// present. Only the implicit file may be missing.
func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", path, err)
		}
		return nil
	}

	v.AddConfigPath("configs")
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
