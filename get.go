package kvpfs

import (
	"context"

	"github.com/kvpfs/kvpfs/codec"
)

// Get returns the value stored under key in collection. If there is no such
// record, found is false and err is nil. Content the codec cannot parse is
// returned raw, as a string.
func (s *Store) Get(ctx context.Context, collection, key string) (value interface{}, found bool, err error) {
	data, found, err := s.read(ctx, "get", collection, key)
	if err != nil || !found {
		return nil, found, err
	}
	return s.codec.Decode(data), true, nil
}

// Scan decodes the value stored under key in collection into dst. Unlike
// Get, content which cannot be decoded is an error. It returns false if
// there is no such record.
func (s *Store) Scan(ctx context.Context, collection, key string, dst interface{}) (bool, error) {
	const op = "scan"
	u, ok := s.codec.(codec.Unmarshaler)
	if !ok {
		return false, invalid(op, collection, key, "codec does not support typed decoding")
	}
	data, found, err := s.read(ctx, op, collection, key)
	if err != nil || !found {
		return false, err
	}
	if err := u.Unmarshal(data, dst); err != nil {
		return true, &Error{Kind: KindStorage, Op: op, Collection: collection, Key: key, Message: "cannot decode record", Err: err}
	}
	return true, nil
}

func (s *Store) read(ctx context.Context, op, collection, key string) ([]byte, bool, error) {
	path, err := s.path(op, collection, key)
	if err != nil {
		return nil, false, err
	}
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		if missing(err) {
			return nil, false, nil
		}
		return nil, false, kerr(op, collection, key, err)
	}
	return data, true, nil
}
