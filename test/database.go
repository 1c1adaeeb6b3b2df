package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path of a new SQLite database file in the
// temporary directory of the test. The directory is removed with the test.
func TmpFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("fintrack-%s.db", uuid.NewString()))
}
