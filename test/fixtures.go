// Package test runs end-to-end scenarios against stores seeded from the
// fixture trees under testdata.
package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
)

// CopyFixture copies testdata/<name> into a temporary directory, removed when
// the test completes, and returns the copy's path.
func CopyFixture(t testing.TB, name string) string {
	t.Helper()
	tmp, err := os.MkdirTemp("", "kvpfs-fixture-")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(tmp)
	})
	dst := filepath.Join(tmp, name)
	if err := copy.Copy(filepath.Join("testdata", name), dst); err != nil {
		t.Fatal(err)
	}
	return dst
}
