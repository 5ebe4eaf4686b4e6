package kvpfs

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/flimzy/testy"

	"github.com/kvpfs/kvpfs/filesystem"
)

func TestGet(t *testing.T) {
	type tt struct {
		store      *Store
		setup      func(*testing.T, *Store)
		collection string
		key        string
		expected   interface{}
		found      bool
		status     int
		err        string
	}
	tests := testy.NewTable()
	tests.Add("empty collection", tt{
		key:    "alice",
		status: http.StatusBadRequest,
		err:    "kvpfs: get: empty collection name",
	})
	tests.Add("empty key", tt{
		collection: "users",
		status:     http.StatusBadRequest,
		err:        "kvpfs: get users: empty key",
	})
	tests.Add("not found", tt{
		collection: "users",
		key:        "alice",
	})
	tests.Add("missing collection", tt{
		collection: "nope",
		key:        "alice",
	})
	tests.Add("object", tt{
		collection: "users",
		key:        "alice",
		setup: func(t *testing.T, s *Store) {
			if err := s.Put(context.Background(), "users", "alice", map[string]string{"name": "Alice"}); err != nil {
				t.Fatal(err)
			}
		},
		expected: map[string]interface{}{"name": "Alice"},
		found:    true,
	})
	tests.Add("string", tt{
		collection: "users",
		key:        "alice",
		setup: func(t *testing.T, s *Store) {
			if err := s.Put(context.Background(), "users", "alice", "hello world"); err != nil {
				t.Fatal(err)
			}
		},
		expected: "hello world",
		found:    true,
	})
	tests.Add("corrupt json falls back to raw", tt{
		collection: "users",
		key:        "alice",
		setup: func(t *testing.T, s *Store) {
			path := filepath.Join(s.Root(), "users", "_key_alice.json")
			if err := os.WriteFile(path, []byte(`{"name": "Ali`), 0644); err != nil {
				t.Fatal(err)
			}
		},
		expected: `{"name": "Ali`,
		found:    true,
	})
	tests.Add("stored null", tt{
		collection: "users",
		key:        "alice",
		setup: func(t *testing.T, s *Store) {
			if err := s.Put(context.Background(), "users", "alice", nil); err != nil {
				t.Fatal(err)
			}
		},
		expected: nil,
		found:    true,
	})
	tests.Add("permission denied", func(t *testing.T) interface{} {
		s, err := New(context.Background(), &Options{
			RootPath: "db",
			Filesystem: &filesystem.MockFS{
				ReadFileFunc: func(_ context.Context, path string) ([]byte, error) {
					return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
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
			status:     http.StatusForbidden,
			err:        "kvpfs: get users/alice: open db/users/_key_alice.json: permission denied",
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
		value, found, err := s.Get(context.Background(), tt.collection, tt.key)
		testy.StatusError(t, tt.err, tt.status, err)
		if found != tt.found {
			t.Errorf("Unexpected found: %t", found)
		}
		if d := testy.DiffInterface(tt.expected, value); d != nil {
			t.Error(d)
		}
	})
}

func TestScan(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	ctx := context.Background()
	s := newStore(t, "users")
	if err := s.Put(ctx, "users", "alice", user{Name: "Alice", Age: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "users", "bob", "not json"); err != nil {
		t.Fatal(err)
	}

	t.Run("found", func(t *testing.T) {
		var got user
		found, err := s.Scan(ctx, "users", "alice", &got)
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("Expected record to be found")
		}
		if d := testy.DiffInterface(user{Name: "Alice", Age: 7}, got); d != nil {
			t.Error(d)
		}
	})
	t.Run("not found", func(t *testing.T) {
		var got user
		found, err := s.Scan(ctx, "users", "carol", &got)
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("Expected record to be absent")
		}
	})
	t.Run("undecodable", func(t *testing.T) {
		var got user
		found, err := s.Scan(ctx, "users", "bob", &got)
		if !found {
			t.Error("Expected record to be found")
		}
		testy.StatusErrorRE(t, `^kvpfs: scan users/bob: cannot decode record: invalid character`, http.StatusInternalServerError, err)
	})
}
