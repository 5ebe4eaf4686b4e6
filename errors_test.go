package kvpfs

import (
	"context"
	"io/fs"
	"net/http"
	"testing"

	"gitlab.com/flimzy/testy"
	"golang.org/x/xerrors"

	"github.com/kvpfs/kvpfs/filesystem"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "kind only",
			err:      &Error{Kind: KindStorage},
			expected: "kvpfs: storage error",
		},
		{
			name:     "op and message",
			err:      &Error{Kind: KindValidation, Op: "put", Message: "empty collection name"},
			expected: "kvpfs: put: empty collection name",
		},
		{
			name:     "collection",
			err:      &Error{Kind: KindValidation, Op: "put", Collection: "users", Message: "empty key"},
			expected: "kvpfs: put users: empty key",
		},
		{
			name:     "wrapped",
			err:      &Error{Kind: KindStorage, Op: "get", Collection: "users", Key: "alice", Err: xerrors.New("boom")},
			expected: "kvpfs: get users/alice: boom",
		},
		{
			name:     "message and wrapped",
			err:      &Error{Kind: KindCollectionNotFound, Op: "put", Collection: "users", Key: "alice", Message: "collection does not exist", Err: xerrors.New("boom")},
			expected: "kvpfs: put users/alice: collection does not exist: boom",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.expected {
				t.Errorf("Unexpected error string: %s", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := xerrors.Errorf("outer: %w", &Error{Kind: KindCollectionNotFound, Op: "put", Message: "collection does not exist"})
	if !xerrors.Is(err, ErrCollectionNotFound) {
		t.Error("Expected ErrCollectionNotFound to match")
	}
	if xerrors.Is(err, ErrValidation) {
		t.Error("Expected ErrValidation not to match")
	}
	if xerrors.Is(err, &Error{Kind: KindCollectionNotFound, Op: "put"}) {
		t.Error("Expected a non-sentinel target not to match")
	}
	if KindOf(err) != KindCollectionNotFound {
		t.Errorf("Unexpected kind: %s", KindOf(err))
	}
	if KindOf(xerrors.New("plain")) != KindUnknown {
		t.Error("Expected plain errors to be KindUnknown")
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"validation", &Error{Kind: KindValidation}, http.StatusBadRequest},
		{"not found", &Error{Kind: KindCollectionNotFound}, http.StatusNotFound},
		{"storage", &Error{Kind: KindStorage, Err: xerrors.New("boom")}, http.StatusInternalServerError},
		{"permission", &Error{Kind: KindStorage, Err: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}}, http.StatusForbidden},
		{"explicit permission", &Error{Kind: KindStorage, Err: &filesystem.Error{Op: "get", Path: "x", Kind: filesystem.KindPermission}}, http.StatusForbidden},
		{"unknown", &Error{}, http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.StatusCode(); got != test.expected {
				t.Errorf("Unexpected status code: %d", got)
			}
			if got := test.err.HTTPStatus(); got != test.expected {
				t.Errorf("Unexpected HTTP status: %d", got)
			}
		})
	}
}

func TestKerr(t *testing.T) {
	if err := kerr("get", "users", "alice", nil); err != nil {
		t.Errorf("Expected nil, got: %v", err)
	}
	inner := invalid("put", "users", "", "empty key")
	if err := kerr("get", "users", "alice", inner); err != inner {
		t.Errorf("Expected passthrough, got: %v", err)
	}
	err := kerr("get", "users", "alice", xerrors.New("boom"))
	testy.StatusError(t, "kvpfs: get users/alice: boom", http.StatusInternalServerError, err)
}

func TestEmptyNamesRejected(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "users")
	names := [][2]string{{"", "alice"}, {"users", ""}, {"", ""}}
	for _, n := range names {
		collection, key := n[0], n[1]
		t.Run(collection+"/"+key, func(t *testing.T) {
			errs := map[string]error{
				"put": s.Put(ctx, collection, key, "x"),
			}
			_, _, errs["get"] = s.Get(ctx, collection, key)
			_, errs["exists"] = s.Exists(ctx, collection, key)
			_, errs["remove"] = s.Remove(ctx, collection, key)
			_, errs["del"] = s.Del(ctx, collection, key)
			for op, err := range errs {
				if !xerrors.Is(err, ErrValidation) {
					t.Errorf("%s: expected validation error, got %v", op, err)
				}
			}
		})
	}
}
