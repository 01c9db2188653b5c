package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type contactRow struct {
	ID    int
	Email string `gorm:"uniqueIndex"`
}

func openClientTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&contactRow{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	if err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&contactRow{}).Error; err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	return conn
}

func TestWithTxCommitsOnNilError(t *testing.T) {
	conn := openClientTestDB(t)
	client := &Client{conn: conn}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&contactRow{Email: "kept@example.com"}).Error
	})
	if err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := conn.Model(&contactRow{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn := openClientTestDB(t)
	client := &Client{conn: conn}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&contactRow{Email: "discarded@example.com"}).Error; err != nil {
			return err
		}
		return errors.New("write aborted")
	})
	if err == nil {
		t.Fatal("expected WithTx to surface the callback error")
	}

	var count int64
	if err := conn.Model(&contactRow{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave 0 rows, got %d", count)
	}
}

func TestPing(t *testing.T) {
	conn := openClientTestDB(t)
	client := &Client{conn: conn}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := openClientTestDB(t)

	if err := conn.Create(&contactRow{Email: "dup@example.com"}).Error; err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}
	err := conn.Create(&contactRow{Email: "dup@example.com"}).Error
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}

	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation, got: %v", err)
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error reported as unique violation")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error reported as unique violation")
	}
}
