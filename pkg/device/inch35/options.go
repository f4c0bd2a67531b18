package inch35

import (
	"time"

	"go.uber.org/zap"

	"turingscreen/pkg/bitmap"
)

// Config holds the controller's transfer policy. Zero values fall back to
// the defaults below.
type Config struct {
	// ReadTimeout bounds the handshake read-back.
	ReadTimeout time.Duration

	// WriteTimeout bounds every frame write.
	WriteTimeout time.Duration

	// Retries is how many extra attempts a transient write failure gets
	// before the screen is given up as ErrCommunication.
	Retries int

	// Backoff is the base delay between attempts, scaled by attempt count.
	Backoff time.Duration

	// MaxTransfer caps the pixel payload of one bitmap frame.
	MaxTransfer int

	Logger *zap.Logger
}

func defaultConfig() Config {
	return Config{
		ReadTimeout:  time.Second,
		WriteTimeout: 5 * time.Second,
		Retries:      3,
		Backoff:      50 * time.Millisecond,
		MaxTransfer:  bitmap.MaxTransferBytes,
		Logger:       zap.NewNop(),
	}
}

type Option func(*Config)

func WithRetries(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.Retries = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(c *Config) {
		c.Backoff = d
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

func WithMaxTransfer(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxTransfer = n
		}
	}
}
