// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package kvpfs

import (
	"net/http"
	"strings"

	"golang.org/x/xerrors"

	"github.com/kvpfs/kvpfs/filesystem"
)

// Kind classifies the errors returned by a Store.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	// KindValidation means the caller supplied an invalid collection name,
	// key or value. No I/O was attempted.
	KindValidation
	// KindCollectionNotFound means a write targeted a collection whose
	// directory does not exist.
	KindCollectionNotFound
	// KindStorage wraps any other failure of the underlying filesystem.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindCollectionNotFound:
		return "collection not found"
	case KindStorage:
		return "storage error"
	}
	return "unknown error"
}

// Error is the error type returned by Store methods.
type Error struct {
	Kind       Kind
	Op         string
	Collection string
	Key        string
	Message    string
	Err        error
}

// Sentinel errors for use with errors.Is. Each matches any *Error of the
// same kind.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrCollectionNotFound = &Error{Kind: KindCollectionNotFound}
	ErrStorage            = &Error{Kind: KindStorage}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("kvpfs: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.Collection != "" {
			b.WriteString(" ")
			b.WriteString(e.Collection)
			if e.Key != "" {
				b.WriteString("/")
				b.WriteString(e.Key)
			}
		}
		b.WriteString(": ")
	}
	switch {
	case e.Message != "" && e.Err != nil:
		b.WriteString(e.Message)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// Unwrap returns the underlying filesystem or codec error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == "" && t.Err == nil
}

// StatusCode returns an HTTP status code describing the error.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindCollectionNotFound:
		return http.StatusNotFound
	case KindStorage:
		if filesystem.KindOf(e.Err) == filesystem.KindPermission {
			return http.StatusForbidden
		}
	}
	return http.StatusInternalServerError
}

// HTTPStatus is an alias for StatusCode.
func (e *Error) HTTPStatus() int {
	return e.StatusCode()
}

// KindOf returns the Kind of err, or KindUnknown if err is not (and does not
// wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func invalid(op, collection, key, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Collection: collection, Key: key, Message: msg}
}

// kerr converts a filesystem error into a storage error. Errors which have
// already been converted are passed through.
func kerr(op, collection, key string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if xerrors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorage, Op: op, Collection: collection, Key: key, Err: err}
}

// missing reports whether err is a filesystem not-exist error.
func missing(err error) bool {
	return filesystem.KindOf(err) == filesystem.KindNotExist
}
