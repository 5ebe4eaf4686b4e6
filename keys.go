package kvpfs

import (
	"context"
	"sort"
	"strings"
)

// explodeFilename returns the key stored in filename, and false if filename
// is not a record file for this store.
func (s *Store) explodeFilename(filename string) (key string, ok bool) {
	suffix := "." + s.ext
	if !strings.HasPrefix(filename, s.prefix) || !strings.HasSuffix(filename, suffix) {
		return "", false
	}
	if len(filename) <= len(s.prefix)+len(suffix) {
		return "", false
	}
	return filename[len(s.prefix) : len(filename)-len(suffix)], true
}

// Keys returns the sorted keys of all records in collection. Files which do
// not follow the record naming scheme are ignored.
func (s *Store) Keys(ctx context.Context, collection string) ([]string, error) {
	const op = "keys"
	path, err := s.collectionPath(op, collection)
	if err != nil {
		return nil, err
	}
	entries, err := s.fs.ReadDir(ctx, path)
	if err != nil {
		if missing(err) {
			return nil, &Error{Kind: KindCollectionNotFound, Op: op, Collection: collection, Message: "collection does not exist", Err: err}
		}
		return nil, kerr(op, collection, "", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := s.explodeFilename(entry.Name())
		if !ok {
			// ignore unrecognized files
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
