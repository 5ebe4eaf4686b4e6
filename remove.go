package kvpfs

import "context"

// Remove deletes the record for key from collection. It returns false if
// there was no such record.
func (s *Store) Remove(ctx context.Context, collection, key string) (bool, error) {
	return s.remove(ctx, "remove", collection, key)
}

// Del is an alias for Remove.
func (s *Store) Del(ctx context.Context, collection, key string) (bool, error) {
	return s.remove(ctx, "del", collection, key)
}

func (s *Store) remove(ctx context.Context, op, collection, key string) (bool, error) {
	path, err := s.path(op, collection, key)
	if err != nil {
		return false, err
	}
	err = s.fs.Remove(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case missing(err):
		return false, nil
	}
	return false, kerr(op, collection, key, err)
}
