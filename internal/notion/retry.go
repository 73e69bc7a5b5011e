package notion

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/notionsync/internal/logger"
)

// RetryPolicy governs how failed requests are retried. Sleep is injectable
// so tests run without real delays; nil means time.Sleep.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration)
}

// FatalError is surfaced once the retry budget is exhausted. It wraps the
// last underlying error.
type FatalError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Do runs fn until it succeeds or the attempt budget runs out. A rate-limit
// response backs off Delay×(attempt+1); any other failure waits a flat
// Delay. No sleep follows the final attempt.
func (p RetryPolicy) Do(op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt == attempts-1 {
			break
		}
		if isRateLimited(err) {
			wait := p.Delay * time.Duration(attempt+1)
			logger.Warn("Rate limited, backing off", map[string]interface{}{
				"op":           op,
				"wait":         wait.String(),
				"attempt":      attempt + 1,
				"max_attempts": attempts,
			})
			sleep(wait)
			continue
		}
		logger.Warn("Request failed, retrying", map[string]interface{}{
			"op":           op,
			"attempt":      attempt + 1,
			"max_attempts": attempts,
			"error":        err.Error(),
		})
		sleep(p.Delay)
	}
	return &FatalError{Op: op, Attempts: attempts, Err: lastErr}
}

func isRateLimited(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Code == "rate_limited"
	}
	return false
}
