package database

import (
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Migration is one versioned, forward-only schema change.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// The structs below freeze each table's shape at the version that created it,
// so later changes to entities never rewrite history.

type genreV1 struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (genreV1) TableName() string { return "genres" }

type shelfV1 struct {
	ID        uint   `gorm:"primaryKey"`
	Number    int    `gorm:"uniqueIndex;not null"`
	Location  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (shelfV1) TableName() string { return "shelves" }

type bookV1 struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"index;size:255;not null"`
	Author    string `gorm:"index;size:255;not null"`
	Publisher string `gorm:"size:255;not null"`
	Year      *int
	Price     string   `gorm:"type:decimal(10,2);not null"`
	Quantity  int      `gorm:"not null;default:1"`
	GenreID   *uint    `gorm:"index"`
	Genre     *genreV1 `gorm:"foreignKey:GenreID"`
	ShelfID   *uint    `gorm:"index"`
	Shelf     *shelfV1 `gorm:"foreignKey:ShelfID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bookV1) TableName() string { return "books" }

type auditEventV1 struct {
	ID          uint      `gorm:"primaryKey"`
	EventType   string    `gorm:"index;size:50"`
	Action      string    `gorm:"size:100"`
	Description string    `gorm:"size:500"`
	EntityType  string    `gorm:"index;size:50"`
	EntityID    *uint     `gorm:"index"`
	Metadata    string    `gorm:"type:text"`
	RequestID   string    `gorm:"size:64"`
	Status      string    `gorm:"size:20"`
	ErrorMsg    string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"index"`
}

func (auditEventV1) TableName() string { return "audit_events" }

// Migrations lists every schema version in order. Append only.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_genres_and_shelves",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&genreV1{}, &shelfV1{})
		},
	},
	{
		Version: 2,
		Name:    "create_books",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&bookV1{})
		},
	},
	{
		Version: 3,
		Name:    "create_audit_events",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&auditEventV1{})
		},
	},
}

// MigrationStatus describes one known migration and whether it has been applied.
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

func (d *Database) ensureMigrationsTable() error {
	if d.DB.Migrator().HasTable(&entities.SchemaMigration{}) {
		return nil
	}
	return d.DB.Migrator().CreateTable(&entities.SchemaMigration{})
}

// appliedMigrations never writes: without a schema_migrations table
// nothing has been applied yet.
func (d *Database) appliedMigrations() (map[int]entities.SchemaMigration, error) {
	if !d.DB.Migrator().HasTable(&entities.SchemaMigration{}) {
		return map[int]entities.SchemaMigration{}, nil
	}

	var rows []entities.SchemaMigration
	if err := d.DB.Order("version ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	applied := make(map[int]entities.SchemaMigration, len(rows))
	for _, row := range rows {
		applied[row.Version] = row
	}
	return applied, nil
}

// MigrationStatuses reports every known migration in version order.
// It only reads, so health checks can call it.
func (d *Database) MigrationStatuses() ([]MigrationStatus, error) {
	applied, err := d.appliedMigrations()
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(Migrations))
	for _, m := range sortedMigrations() {
		status := MigrationStatus{Version: m.Version, Name: m.Name}
		if row, ok := applied[m.Version]; ok {
			appliedAt := row.AppliedAt
			status.Applied = true
			status.AppliedAt = &appliedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// PendingMigrations returns migrations that have not been applied yet.
func (d *Database) PendingMigrations() ([]Migration, error) {
	statuses, err := d.MigrationStatuses()
	if err != nil {
		return nil, err
	}
	byVersion := make(map[int]Migration, len(Migrations))
	for _, m := range Migrations {
		byVersion[m.Version] = m
	}

	var pending []Migration
	for _, s := range statuses {
		if !s.Applied {
			pending = append(pending, byVersion[s.Version])
		}
	}
	return pending, nil
}

// Migrate applies all pending migrations, each in its own transaction,
// and returns how many were applied.
func (d *Database) Migrate() (int, error) {
	if err := d.ensureMigrationsTable(); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	pending, err := d.PendingMigrations()
	if err != nil {
		return 0, err
	}

	for i, m := range pending {
		err := d.DB.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&entities.SchemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return i, fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return len(pending), nil
}

func sortedMigrations() []Migration {
	sorted := make([]Migration, len(Migrations))
	copy(sorted, Migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})
	return sorted
}
