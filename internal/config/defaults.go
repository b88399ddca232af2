package config

import "time"

// DefaultConfig returns the default configuration for a local development
// backend.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Chat: ChatConfig{
			// WSHost is derived from api.base_url unless set explicitly.
			WSHost:         "",
			Secure:         false,
			Room:           "chat_room1",
			PollInterval:   3 * time.Second,
			ReconnectDelay: 3 * time.Second,
		},
		UI: UIConfig{
			SyntaxStyle:  "monokai",
			MouseEnabled: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}
