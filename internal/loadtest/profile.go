package loadtest

import (
	"fmt"
	"time"
)

// Profile is an immutable workload description. It is created once by the
// caller and read-only for the life of a run.
type Profile struct {
	Name            string
	Connections     int           // parallel workers, each owning one handle
	OpsPerSecond    int           // advisory sizing input, not a live rate cap
	DataSizeBytes   int           // payload generated per write operation
	ThinkTime       time.Duration // pause between a worker's consecutive ops
	DurationSeconds int           // sizing input: total ops = OpsPerSecond * DurationSeconds
}

// LowLoad returns the canonical low-load preset.
func LowLoad() Profile {
	return Profile{
		Name:            "Low Load",
		Connections:     2,
		OpsPerSecond:    10,
		DataSizeBytes:   10 * 1024,
		ThinkTime:       100 * time.Millisecond,
		DurationSeconds: 60,
	}
}

// HighLoad returns the canonical high-load preset.
func HighLoad() Profile {
	return Profile{
		Name:            "High Load",
		Connections:     50,
		OpsPerSecond:    500,
		DataSizeBytes:   1024 * 1024,
		ThinkTime:       0,
		DurationSeconds: 300,
	}
}

// Option overrides one field of a custom profile.
type Option func(*Profile)

func WithConnections(n int) Option { return func(p *Profile) { p.Connections = n } }

func WithOpsPerSecond(n int) Option { return func(p *Profile) { p.OpsPerSecond = n } }

func WithDataSize(bytes int) Option { return func(p *Profile) { p.DataSizeBytes = bytes } }

func WithThinkTime(d time.Duration) Option { return func(p *Profile) { p.ThinkTime = d } }

func WithDuration(seconds int) Option { return func(p *Profile) { p.DurationSeconds = seconds } }

// Custom builds a named profile starting from the standard defaults.
func Custom(name string, opts ...Option) Profile {
	p := Profile{
		Name:            name,
		Connections:     10,
		OpsPerSecond:    50,
		DataSizeBytes:   100 * 1024,
		ThinkTime:       50 * time.Millisecond,
		DurationSeconds: 120,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Validate rejects profiles the engine cannot run.
func (p Profile) Validate() error {
	switch {
	case p.Connections <= 0:
		return fmt.Errorf("%w: connections must be positive, got %d", ErrInvalidConfiguration, p.Connections)
	case p.OpsPerSecond <= 0:
		return fmt.Errorf("%w: ops per second must be positive, got %d", ErrInvalidConfiguration, p.OpsPerSecond)
	case p.DataSizeBytes <= 0:
		return fmt.Errorf("%w: data size must be positive, got %d", ErrInvalidConfiguration, p.DataSizeBytes)
	case p.ThinkTime < 0:
		return fmt.Errorf("%w: think time must be non-negative, got %s", ErrInvalidConfiguration, p.ThinkTime)
	case p.DurationSeconds <= 0:
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidConfiguration, p.DurationSeconds)
	}
	return nil
}

// TotalOperations is the fixed work count a run executes. Duration is
// translated into a target operation count up front; the run is bounded by
// that count, not by a wall-clock timer, so a slow store stretches elapsed
// time past DurationSeconds. That translation is deliberate policy.
func (p Profile) TotalOperations() int {
	return p.OpsPerSecond * p.DurationSeconds
}
