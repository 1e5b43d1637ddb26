package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the flat key-value namespace.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

// DB is a Store backed by a gorm database. It shares the sqlite file with
// the rest of the application.
type DB struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at dbFile and migrates the
// key-value table.
func Open(dbFile string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	return NewDB(db)
}

// NewDB wraps an existing gorm handle and migrates the key-value table.
func NewDB(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// Gorm exposes the underlying handle so other modules can share the file.
func (s *DB) Gorm() *gorm.DB { return s.db }

func (s *DB) Get(key string) ([]byte, bool, error) {
	var e Entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

func (s *DB) Set(key string, value []byte) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *DB) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}
