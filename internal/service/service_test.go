package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/inkpress/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Article{}, &db.Comment{}, &db.Vote{}, &db.Tag{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := db.EnsureIndexes(gdb); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *db.User {
	t.Helper()

	user := &db.User{
		Username:    username,
		Password:    "hashed",
		ProfileName: username,
		DisplayName: username,
		Status:      db.UserActive,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedTag(t *testing.T, gdb *gorm.DB, name string, deleted bool) *db.Tag {
	t.Helper()

	tag := &db.Tag{Name: name, Slug: slugify(name), IsDeleted: deleted}
	if err := gdb.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag %s: %v", name, err)
	}
	return tag
}

// pinSlugSuffix makes slug generation deterministic for one test.
func pinSlugSuffix(t *testing.T, suffix string) {
	t.Helper()

	orig := newSlugSuffix
	newSlugSuffix = func() string { return suffix }
	t.Cleanup(func() { newSlugSuffix = orig })
}
