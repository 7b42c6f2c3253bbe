package main

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEmbeddedMigrationsPaired(t *testing.T) {
	t.Parallel()

	src, err := iofs.New(baseFS, "migrations")
	if err != nil {
		t.Fatalf("iofs: %v", err)
	}
	defer src.Close()

	version, err := src.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	for {
		up, _, err := src.ReadUp(version)
		if err != nil {
			t.Fatalf("version %d has no up migration: %v", version, err)
		}
		_ = up.Close()

		down, _, err := src.ReadDown(version)
		if err != nil {
			t.Fatalf("version %d has no down migration: %v", version, err)
		}
		_ = down.Close()

		next, err := src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}

		if err != nil {
			t.Fatalf("next after %d: %v", version, err)
		}

		version = next
	}
}
