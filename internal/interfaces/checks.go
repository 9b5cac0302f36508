package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/client"
	"github.com/mrlokans/bookstore/internal/database"
	auditRepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/genres"
	"github.com/mrlokans/bookstore/internal/database/shelves"
	"github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.GenreStore = (*genres.Repository)(nil)
var _ http.ShelfStore = (*shelves.Repository)(nil)
var _ http.HealthChecker = (*database.Database)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ audit.Store = (*auditRepo.Repository)(nil)
var _ http.AuditLogger = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.AuditCleanupEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)

// =============================================================================
// Client
// =============================================================================

var _ client.Backend = (*client.API)(nil)
