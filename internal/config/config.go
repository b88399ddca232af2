// Package config holds the client configuration: backend endpoints, the
// bearer token, chat/polling cadence, and UI preferences.
package config

import "time"

// Config represents the main application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Chat    ChatConfig    `yaml:"chat"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds REST API settings.
type APIConfig struct {
	// BaseURL of the Applaude backend, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url"`
	// Token is the JWT access token. Usually supplied via APPLAUDE_TOKEN
	// rather than stored in the file.
	Token string `yaml:"token,omitempty"`
	// Username and FirstName identify the authenticated user to the chat.
	Username  string `yaml:"username,omitempty"`
	FirstName string `yaml:"first_name,omitempty"`
}

// ChatConfig holds streaming and polling settings.
type ChatConfig struct {
	// Host of the websocket endpoint, host:port. Defaults to the API host.
	WSHost string `yaml:"ws_host"`
	// Secure selects wss over ws, mirroring the API scheme.
	Secure bool `yaml:"ws_secure"`
	// Room is the chat room joined on connect.
	Room string `yaml:"room"`
	// PollInterval is the project poll cadence.
	PollInterval time.Duration `yaml:"poll_interval"`
	// ReconnectDelay is the fixed wait before redialing after an abnormal
	// close.
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// SyntaxStyle is the chroma style for code blocks.
	SyntaxStyle string `yaml:"syntax_style"`
	// MouseEnabled enables mouse wheel scrolling in the transcript.
	MouseEnabled bool `yaml:"mouse_enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}
