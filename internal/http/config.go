package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Inventory stores
	BookStore  BookStore
	GenreStore GenreStore
	ShelfStore ShelfStore

	// Health checks (optional)
	Health HealthChecker

	// Audit trail (optional)
	AuditLogger AuditLogger
	AuditReader AuditReader

	// Task queue (optional; nil when TASKS_ENABLED=false)
	AuditCleanup       AuditCleanupEnqueuer
	TaskStatus         TaskStatusReader
	AuditRetentionDays int

	// Per-client rate limiting (optional)
	RateLimiter *RateLimiter

	// Application info
	Version string
}
