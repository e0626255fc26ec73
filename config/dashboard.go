package config

import (
	"errors"
	"fmt"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type Events struct {
	BufferSize int `mapstructure:"bufferSize"`
}

// Dashboard holds the settings of one dashboard process.
type Dashboard struct {
	Server  Server  `mapstructure:"server"`
	Log     Log     `mapstructure:"log"`
	Metrics Metrics `mapstructure:"metrics"`
	Events  Events  `mapstructure:"events"`
}

// Default returns the settings used when no properties file is present.
func Default() Dashboard {
	return Dashboard{
		Server:  Server{Host: "localhost", Port: 8080},
		Log:     Log{Level: "info"},
		Metrics: Metrics{Enabled: true, Path: "/metrics"},
		Events:  Events{BufferSize: 16},
	}
}

func (d Dashboard) Addr() string {
	return fmt.Sprintf("%s:%d", d.Server.Host, d.Server.Port)
}

// LoadDashboard layers Default, the properties file for profile in dir (when
// there is one) and RBAC_ environment variables, in that order.
func LoadDashboard(dir string, profile string) (Dashboard, error) {
	v := newViper()
	def := Default()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.path", def.Metrics.Path)
	v.SetDefault("events.bufferSize", def.Events.BufferSize)

	if err := read(v, dir, profile); err != nil && !errors.Is(err, ErrNoProperties) {
		return Dashboard{}, err
	}

	var dashboard Dashboard
	if err := v.Unmarshal(&dashboard); err != nil {
		return Dashboard{}, fmt.Errorf("failed to parse properties: %w", err)
	}
	return dashboard, nil
}
