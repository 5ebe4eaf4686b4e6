package kvpfs

import (
	"context"
	"sort"
)

// CreateCollection creates the directory for the named collection, along
// with any missing parents. It succeeds if the collection already exists.
func (s *Store) CreateCollection(ctx context.Context, name string) error {
	const op = "create collection"
	path, err := s.collectionPath(op, name)
	if err != nil {
		return err
	}
	return kerr(op, name, "", s.fs.MkdirAll(ctx, path))
}

// CollectionExists returns true if the collection's directory exists.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	const op = "collection exists"
	path, err := s.collectionPath(op, name)
	if err != nil {
		return false, err
	}
	info, err := s.fs.Stat(ctx, path)
	if err == nil {
		return info.IsDir(), nil
	}
	if missing(err) {
		return false, nil
	}
	return false, kerr(op, name, "", err)
}

// DropCollection removes the collection and every record in it. It returns
// false if the collection did not exist.
func (s *Store) DropCollection(ctx context.Context, name string) (bool, error) {
	const op = "drop collection"
	exists, err := s.CollectionExists(ctx, name)
	if err != nil || !exists {
		return false, err
	}
	path, err := s.collectionPath(op, name)
	if err != nil {
		return false, err
	}
	if err := s.fs.RemoveAll(ctx, path); err != nil {
		return false, kerr(op, name, "", err)
	}
	return true, nil
}

// Collections returns the sorted names of all collections under the root
// path. A missing root path yields no collections.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	const op = "collections"
	root, err := s.fs.Abs(s.root)
	if err != nil {
		return nil, kerr(op, "", "", err)
	}
	entries, err := s.fs.ReadDir(ctx, root)
	if err != nil {
		if missing(err) {
			return []string{}, nil
		}
		return nil, kerr(op, "", "", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
