// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book CRUD and search (internal/http/stores.go)
//   - GenreStore: Genre listing and creation (internal/http/stores.go)
//   - ShelfStore: Shelf listing and creation (internal/http/stores.go)
//   - HealthChecker: Store ping and pending migrations (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - audit.Store: Persistence for audit events (internal/audit/service.go)
//   - AuditLogger / AuditReader: Used by controllers (internal/http/stores.go)
//   - AuditCleaner: Used by the cleanup task (internal/tasks/cleanup_audit.go)
//
// ## Task Interfaces
//
//   - AuditCleanupEnqueuer: Enqueue a cleanup from HTTP (internal/http/stores.go)
//   - TaskStatusReader: Task status lookup (internal/http/tasks.go)
//   - Enqueuer: Enqueue a cleanup from cron (internal/scheduler/audit_cleanup.go)
//
// ## Client Interfaces
//
//   - Backend: The API calls the client controller makes (internal/client/controller.go)
//
// # Adding a New Inventory Entity
//
//  1. Add the model to internal/entities/inventory.go
//
//  2. Append a Migration creating its table in internal/database/migrations.go.
//     Existing migrations are never edited.
//
//  3. Create sub-package internal/database/<name>/ with a Repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//     Return database.Translate(err, resource) for every store error.
//
//  4. Define the store interface in internal/http/stores.go, add a controller
//     and register its routes in router.go
//
//  5. Add compile-time check:
//
//     var _ http.ThingStore = (*things.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
