package kvpfs

import (
	"path/filepath"
	"strings"
)

func validateCollection(op, name string) error {
	switch {
	case name == "":
		return invalid(op, "", "", "empty collection name")
	case name == "." || name == "..":
		return invalid(op, name, "", "invalid collection name")
	case strings.ContainsAny(name, "/\\\x00"):
		return invalid(op, name, "", "collection name must not contain a path separator")
	}
	return nil
}

func validateKey(op, collection, key string) error {
	if err := validateCollection(op, collection); err != nil {
		return err
	}
	switch {
	case key == "":
		return invalid(op, collection, "", "empty key")
	case strings.ContainsAny(key, "/\\\x00"):
		return invalid(op, collection, key, "key must not contain a path separator")
	}
	return nil
}

// FileName returns the name of the file holding key.
func (s *Store) FileName(key string) string {
	return s.prefix + key + "." + s.ext
}

// RelativePath returns the path of the record file for key, relative to the
// root path as configured. If key is empty, the collection directory's path
// is returned.
func (s *Store) RelativePath(collection, key string) (string, error) {
	if err := validateCollection("path", collection); err != nil {
		return "", err
	}
	if key == "" {
		return filepath.Join(s.root, collection), nil
	}
	if err := validateKey("path", collection, key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, collection, s.FileName(key)), nil
}

// AbsolutePath is like RelativePath, but the result is resolved by the
// filesystem, so it is independent of the working directory.
func (s *Store) AbsolutePath(collection, key string) (string, error) {
	return s.abs("path", collection, key)
}

// abs resolves the path of collection and key, reporting failures on behalf
// of op.
func (s *Store) abs(op, collection, key string) (string, error) {
	rel, err := s.RelativePath(collection, key)
	if err != nil {
		return "", err
	}
	abs, err := s.fs.Abs(rel)
	return abs, kerr(op, collection, key, err)
}

// path validates collection and key on behalf of op, and returns the
// absolute path of the record.
func (s *Store) path(op, collection, key string) (string, error) {
	if err := validateKey(op, collection, key); err != nil {
		return "", err
	}
	return s.abs(op, collection, key)
}

func (s *Store) collectionPath(op, collection string) (string, error) {
	if err := validateCollection(op, collection); err != nil {
		return "", err
	}
	return s.abs(op, collection, "")
}
