package sensor

import (
	"time"

	"github.com/veldtec/go-r307/protocol"
)

// Config holds the device configuration.
type Config struct {
	// Address is the 4-byte device address frames are sent to and
	// validated against
	Address uint32

	// BaudRate is the serial line speed
	BaudRate int

	// ReadTimeout bounds every frame read on the serial port
	ReadTimeout time.Duration

	// MaxAttempts bounds the retry loop for recoverable confirmation
	// codes (no finger, transient capture failure)
	MaxAttempts int

	// RetryDelay is slept between retry attempts
	RetryDelay time.Duration

	// ChunkSize is the data frame payload size for template downloads
	ChunkSize int

	// ProgressCallback is called as workflows move between phases (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the sensor's factory communication parameters.
func defaultConfig() Config {
	return Config{
		Address:     protocol.DefaultAddress,
		BaudRate:    57600,
		ReadTimeout: 2 * time.Second,
		MaxAttempts: 5,
		RetryDelay:  500 * time.Millisecond,
		ChunkSize:   128,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithAddress sets the device address for frames in both directions.
// Modules ship with the broadcast address 0xFFFFFFFF.
func WithAddress(addr uint32) Option {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithBaudRate sets the serial line speed. Default is 57600.
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.BaudRate = baud
		}
	}
}

// WithReadTimeout sets the per-read deadline on the serial port.
//
// Example:
//
//	dev, err := sensor.Open("/dev/ttyUSB0", sensor.WithReadTimeout(5*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithMaxAttempts sets how many times a command with a recoverable
// failure status is reissued before giving up.
func WithMaxAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.MaxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the pause between retry attempts. Zero is allowed
// and useful in tests.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.RetryDelay = delay
		}
	}
}

// WithChunkSize sets the data frame payload size for template downloads.
// Default is 128 bytes, the size R307 modules are configured with.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 && size <= protocol.MaxPayloadSize {
			c.ChunkSize = size
		}
	}
}

// WithProgressCallback sets a callback invoked as capture and match
// workflows move between phases.
//
// Example:
//
//	dev := sensor.NewDevice(conn,
//	    sensor.WithProgressCallback(func(p sensor.Progress) {
//	        fmt.Printf("[%s]\n", p.Phase)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for device operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
