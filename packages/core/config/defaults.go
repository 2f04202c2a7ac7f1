package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "",
		Headers:         nil,
		MaxRedirects:    10,
		Proxy:           "",
		RateLimit:       0,
		RequestIDHeader: "",
		LogLevel:        "error",
	}
}
