package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Config describes how an operation is retried.
type Config struct {
	MaxRetries     int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	BackoffFactor  float64
	Logger         logrus.FieldLogger
	Context        context.Context
	RetryCondition func(error) bool
}

func DefaultConfig() *Config {
	return &Config{
		MaxRetries:     3,
		InitialDelay:   100 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		BackoffFactor:  2.0,
		RetryCondition: IsTransientError,
	}
}

func (c *Config) WithLogger(l logrus.FieldLogger) *Config {
	c.Logger = l
	return c
}

func (c *Config) WithContext(ctx context.Context) *Config {
	c.Context = ctx
	return c
}

func (c *Config) WithMaxRetries(maxRetries int) *Config {
	c.MaxRetries = maxRetries
	return c
}

func (c *Config) WithInitialDelay(delay time.Duration) *Config {
	c.InitialDelay = delay
	return c
}

func (c *Config) WithMaxDelay(delay time.Duration) *Config {
	c.MaxDelay = delay
	return c
}

func (c *Config) WithBackoffFactor(factor float64) *Config {
	c.BackoffFactor = factor
	return c
}

// WithRetryCondition overrides which errors are retried. A nil condition
// retries every error.
func (c *Config) WithRetryCondition(condition func(error) bool) *Config {
	c.RetryCondition = condition
	return c
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"timeout",
	"temporary failure",
	"network unreachable",
	"context deadline exceeded",
	"driver: bad connection",
	"kafka",
}

// IsTransientError reports whether err is worth retrying.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Temporary()
	}

	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// ExecuteWithRetry runs operation until it succeeds, returns a non-retryable
// error, the context is done, or MaxRetries+1 attempts have failed.
func ExecuteWithRetry(c *Config, operation func() error) error {
	if c == nil {
		c = DefaultConfig()
	}
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	l := c.Logger
	if l == nil {
		nl := logrus.New()
		nl.SetLevel(logrus.PanicLevel)
		l = nl
	}

	var lastErr error
	delay := c.InitialDelay
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("operation cancelled: %w", err)
		}

		err := operation()
		if err == nil {
			if attempt > 0 {
				l.WithField("attempts", attempt+1).Info("Operation succeeded after retry.")
			}
			return nil
		}
		lastErr = err

		if c.RetryCondition != nil && !c.RetryCondition(err) {
			l.WithError(err).Debug("Error is not retryable, aborting.")
			return err
		}
		if attempt == c.MaxRetries {
			break
		}

		l.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay,
		}).WithError(err).Warn("Operation failed, retrying.")

		select {
		case <-ctx.Done():
			return fmt.Errorf("operation cancelled during retry delay: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * c.BackoffFactor)
		if delay > c.MaxDelay {
			delay = c.MaxDelay
		}
	}

	l.WithField("attempts", c.MaxRetries+1).WithError(lastErr).Error("Operation failed after all retry attempts.")
	return fmt.Errorf("operation failed after %d attempts, last error: %w", c.MaxRetries+1, lastErr)
}
