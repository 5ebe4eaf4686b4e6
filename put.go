package kvpfs

import (
	"context"
)

// Put stores value under key in collection, replacing any previous value.
// The collection must already exist; if it does not, Put fails with an
// error of kind KindCollectionNotFound.
func (s *Store) Put(ctx context.Context, collection, key string, value interface{}) error {
	const op = "put"
	path, err := s.path(op, collection, key)
	if err != nil {
		return err
	}
	data, err := s.codec.Encode(value)
	if err != nil {
		return &Error{Kind: KindValidation, Op: op, Collection: collection, Key: key, Message: "cannot serialize value", Err: err}
	}
	err = s.fs.WriteFile(ctx, path, data)
	if missing(err) {
		return &Error{Kind: KindCollectionNotFound, Op: op, Collection: collection, Key: key, Message: "collection does not exist", Err: err}
	}
	return kerr(op, collection, key, err)
}
