package motoron

// Config holds the device configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithLogger sets a logger for the device operations.
//
// Example:
//
//	mc := motoron.New(transport, motoron.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
