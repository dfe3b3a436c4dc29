// Package test contains helpers shared by tests across packages.
package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns a fresh SQLite path inside the test's temporary
// directory, so every test runs against its own database.
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}
