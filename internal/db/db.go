package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle used by services and handlers.
var DB *gorm.DB

// Init opens the sqlite database and runs migrations.
// databasePath falls back to inkpress.db when empty.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "inkpress.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	if err = DB.AutoMigrate(
		&User{},
		&Article{},
		&Comment{},
		&Vote{},
		&Tag{},
	); err != nil {
		return err
	}

	return EnsureIndexes(DB)
}

// EnsureIndexes creates the uniqueness backstops AutoMigrate cannot express.
// Services pre-check slugs and votes before inserting, but check-then-insert
// is not atomic across requests; these constraints are the enforcement point
// and violations surface as gorm.ErrDuplicatedKey.
func EnsureIndexes(gdb *gorm.DB) error {
	// A slug is unique among live articles only: hard-deleting a draft frees
	// its slug and a soft-deleted article does not block reuse.
	return gdb.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_live_slug ON articles(slug) WHERE status <> 3",
	).Error
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
