// Package revision gathers weak words from history, builds bounded
// practice sessions from them and derives follow-up sessions from scored
// ones.
package revision

// Config holds revision pool and session sizing.
type Config struct {
	// MinPoolSize is the pool size below which chapter words are swept in.
	MinPoolSize int
	// SlowAttemptMs marks an attempt as weak even when it was answered.
	SlowAttemptMs int64
	// SessionCap is the default maximum number of words per session.
	SessionCap int
}

// DefaultConfig returns the standard revision thresholds.
func DefaultConfig() Config {
	return Config{
		MinPoolSize:   50,
		SlowAttemptMs: 15000,
		SessionCap:    50,
	}
}
