package config

import "fmt"

// ServerConfig configures the HTTP and websocket service.
type ServerConfig struct {
	Addr         string
	AllowOrigins string

	// MaxSessions caps live games; 0 means no limit.
	MaxSessions int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":8080",
		AllowOrigins: "*",
	}
}

// Validate checks the server settings.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("server address is empty: %w", errInvalid)
	}
	if s.MaxSessions < 0 {
		return fmt.Errorf("max sessions (%d) must not be negative: %w", s.MaxSessions, errInvalid)
	}
	return nil
}
