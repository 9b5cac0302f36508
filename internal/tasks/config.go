package tasks

import "time"

// Config tunes the background queue. Zero fields take the DefaultConfig value.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this
	CleanupInterval time.Duration // how often finished tasks are purged

	// AuditRetentionDays applies to cleanups enqueued without a window.
	AuditRetentionDays int
}

func DefaultConfig() Config {
	return Config{
		Workers:            2,
		ReleaseAfter:       15 * time.Minute,
		CleanupInterval:    time.Hour,
		AuditRetentionDays: defaultAuditRetentionDays,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	if c.AuditRetentionDays <= 0 {
		c.AuditRetentionDays = def.AuditRetentionDays
	}
	return c
}
