package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	auditRepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/genres"
	"github.com/mrlokans/bookstore/internal/database/shelves"
)

type testEnv struct {
	router *gin.Engine
	db     *database.Database
	audit  *audit.Service
}

// openTestDB opens a temp SQLite database, migrated unless migrate is false.
func openTestDB(t *testing.T, migrate bool) *database.Database {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "api.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := database.NewDatabase(database.Options{Driver: database.DriverSQLite, DSN: dsn, LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if migrate {
		_, err = db.Migrate()
		require.NoError(t, err)
	}
	return db
}

func setupTestEnv(t *testing.T, mutate ...func(*RouterConfig)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := openTestDB(t, true)
	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	t.Cleanup(auditService.Wait)

	cfg := RouterConfig{
		BookStore:          books.NewRepository(db.DB),
		GenreStore:         genres.NewRepository(db.DB),
		ShelfStore:         shelves.NewRepository(db.DB),
		Health:             db,
		AuditLogger:        auditService,
		AuditReader:        auditService,
		AuditRetentionDays: 30,
		Version:            "test",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &testEnv{router: NewRouter(cfg), db: db, audit: auditService}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
