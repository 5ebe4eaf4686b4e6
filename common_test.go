package kvpfs

import (
	"context"
	"os"
	"testing"
)

func tempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "kvpfs-")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func rmdir(t *testing.T, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
}

// newStore returns a store rooted in a fresh temporary directory, with the
// named collections already created.
func newStore(t *testing.T, collections ...string) *Store {
	t.Helper()
	dir := tempDir(t)
	t.Cleanup(func() {
		rmdir(t, dir)
	})
	s, err := New(context.Background(), &Options{
		RootPath:    dir,
		Collections: collections,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}
