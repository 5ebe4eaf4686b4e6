package kvpfs

import "context"

// Exists returns true if a record for key exists in collection and is both
// readable and writable. A permission failure is returned as an error, not
// reported as a missing record.
func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	const op = "exists"
	path, err := s.path(op, collection, key)
	if err != nil {
		return false, err
	}
	err = s.fs.Access(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case missing(err):
		return false, nil
	}
	return false, kerr(op, collection, key, err)
}
