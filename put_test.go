package kvpfs

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/flimzy/diff"
	"gitlab.com/flimzy/testy"
	"golang.org/x/xerrors"

	"github.com/kvpfs/kvpfs/filesystem"
)

func TestPut(t *testing.T) {
	type tt struct {
		store      *Store
		setup      func(*testing.T, *Store)
		final      func(*testing.T, *Store)
		collection string
		key        string
		value      interface{}
		status     int
		err        string
	}
	tests := testy.NewTable()
	tests.Add("empty collection", tt{
		key:    "alice",
		value:  "x",
		status: http.StatusBadRequest,
		err:    "kvpfs: put: empty collection name",
	})
	tests.Add("empty key", tt{
		collection: "users",
		value:      "x",
		status:     http.StatusBadRequest,
		err:        "kvpfs: put users: empty key",
	})
	tests.Add("simple create", tt{
		collection: "users",
		key:        "alice",
		value:      map[string]string{"name": "Alice"},
		final: func(t *testing.T, s *Store) {
			expected := map[string]string{"name": "Alice"}
			if d := diff.AsJSON(expected, &diff.File{Path: filepath.Join(s.Root(), "users", "_key_alice.json")}); d != nil {
				t.Error(d)
			}
		},
	})
	tests.Add("string stored verbatim", tt{
		collection: "users",
		key:        "alice",
		value:      "hello world",
		final: func(t *testing.T, s *Store) {
			got, err := os.ReadFile(filepath.Join(s.Root(), "users", "_key_alice.json"))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "hello world" {
				t.Errorf("Unexpected content: %s", got)
			}
		},
	})
	tests.Add("overwrite", tt{
		collection: "users",
		key:        "alice",
		value:      map[string]string{"name": "Alice Liddell"},
		setup: func(t *testing.T, s *Store) {
			if err := s.Put(context.Background(), "users", "alice", map[string]interface{}{"name": "Alice", "age": 7}); err != nil {
				t.Fatal(err)
			}
		},
		final: func(t *testing.T, s *Store) {
			expected := map[string]string{"name": "Alice Liddell"}
			if d := diff.AsJSON(expected, &diff.File{Path: filepath.Join(s.Root(), "users", "_key_alice.json")}); d != nil {
				t.Error(d)
			}
		},
	})
	tests.Add("collection does not exist", tt{
		collection: "nope",
		key:        "alice",
		value:      "x",
		status:     http.StatusNotFound,
		err:        "^kvpfs: put nope/alice: collection does not exist: open .*: no such file or directory$",
		final: func(t *testing.T, s *Store) {
			if _, err := os.Stat(filepath.Join(s.Root(), "nope")); !os.IsNotExist(err) {
				t.Errorf("Collection should not be created implicitly: %v", err)
			}
		},
	})
	tests.Add("unserializable value", tt{
		collection: "users",
		key:        "alice",
		value:      make(chan int),
		status:     http.StatusBadRequest,
		err:        "^kvpfs: put users/alice: cannot serialize value: json: unsupported type: chan int$",
	})
	tests.Add("write fails", func(t *testing.T) interface{} {
		s, err := New(context.Background(), &Options{
			RootPath: "db",
			Filesystem: &filesystem.MockFS{
				WriteFileFunc: func(_ context.Context, path string, _ []byte) error {
					return &fs.PathError{Op: "open", Path: path, Err: xerrors.New("no space left on device")}
				},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		return tt{
			store:      s,
			collection: "users",
			key:        "alice",
			value:      "x",
			status:     http.StatusInternalServerError,
			err:        "^kvpfs: put users/alice: open db/users/_key_alice.json: no space left on device$",
		}
	})

	tests.Run(t, func(t *testing.T, tt tt) {
		s := tt.store
		if s == nil {
			s = newStore(t, "users")
		}
		if tt.setup != nil {
			tt.setup(t, s)
		}
		err := s.Put(context.Background(), tt.collection, tt.key, tt.value)
		if tt.final != nil {
			defer tt.final(t, s)
		}
		testy.StatusErrorRE(t, tt.err, tt.status, err)
	})
}

func TestPutCollectionNotFoundIs(t *testing.T) {
	s := newStore(t)
	err := s.Put(context.Background(), "users", "alice", "x")
	if !xerrors.Is(err, ErrCollectionNotFound) {
		t.Errorf("Expected ErrCollectionNotFound, got %v", err)
	}
	if xerrors.Is(err, ErrStorage) {
		t.Errorf("Did not expect ErrStorage")
	}
	if k := KindOf(err); k != KindCollectionNotFound {
		t.Errorf("Unexpected kind: %s", k)
	}
}
