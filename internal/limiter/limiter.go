// Package limiter trims a row list with --limit, --offset and --tail.
package limiter

import "fmt"

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // keep at most this many rows (0 = unlimited)
	Offset int // skip the first N rows
	Tail   int // keep only the last N rows; excludes Limit, ignores Offset
}

// Validate rejects negative values and Limit combined with Tail.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open range of n rows that c keeps.
func (c Config) Bounds(n int) (start, end int) {
	if c.Tail > 0 {
		start = n - c.Tail
		if start < 0 {
			start = 0
		}
		return start, n
	}

	start = c.Offset
	if start > n {
		start = n
	}
	end = n
	if c.Limit > 0 && start+c.Limit < n {
		end = start + c.Limit
	}
	return start, end
}

// Apply returns the rows c keeps, sharing the backing array with rows.
func Apply[T any](c Config, rows []T) []T {
	if !c.IsActive() {
		return rows
	}
	start, end := c.Bounds(len(rows))
	return rows[start:end]
}
