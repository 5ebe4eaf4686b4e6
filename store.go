package kvpfs

import (
	"context"
	"strings"

	"github.com/kvpfs/kvpfs/codec"
	"github.com/kvpfs/kvpfs/codec/jsoncodec"
	"github.com/kvpfs/kvpfs/filesystem"
)

// Default configuration values.
const (
	DefaultRootPath      = "./db"
	DefaultFilePrefix    = "_key_"
	DefaultFileExtension = "json"
)

// Options configures a Store. Zero values select the defaults.
type Options struct {
	// RootPath is the directory holding one subdirectory per collection.
	RootPath string
	// FilePrefix is prepended to every record file name.
	FilePrefix string
	// FileExtension is appended, after a dot, to every record file name.
	FileExtension string
	// Collections are created when the store is opened.
	Collections []string
	// Codec serializes record values. When nil, the codec registered for
	// FileExtension is used, or the JSON codec if there is none.
	Codec codec.Codec
	// Filesystem defaults to the local filesystem.
	Filesystem filesystem.Filesystem
}

// Store maps (collection, key) pairs onto files. Its configuration is fixed
// at construction and it holds no other state, so it may be used
// concurrently. It does not coordinate concurrent writers to one record; the
// last write to complete wins.
type Store struct {
	root   string
	prefix string
	ext    string
	codec  codec.Codec
	fs     filesystem.Filesystem
}

// New returns a Store configured by opts, which may be nil. Any collections
// listed in opts are created before New returns.
func New(ctx context.Context, opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}
	s := &Store{
		root:   opts.RootPath,
		prefix: opts.FilePrefix,
		ext:    strings.TrimPrefix(opts.FileExtension, "."),
		codec:  opts.Codec,
		fs:     opts.Filesystem,
	}
	if s.root == "" {
		s.root = DefaultRootPath
	}
	if s.prefix == "" {
		s.prefix = DefaultFilePrefix
	}
	if s.ext == "" {
		s.ext = DefaultFileExtension
	}
	if s.fs == nil {
		s.fs = filesystem.Default()
	}
	if s.codec == nil {
		if c, ok := codec.ForExtension(s.ext); ok {
			s.codec = c
		} else {
			s.codec = jsoncodec.New()
		}
	}
	for _, name := range opts.Collections {
		if err := s.CreateCollection(ctx, name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Root returns the configured root path.
func (s *Store) Root() string {
	return s.root
}

// Codec returns the codec used for record values.
func (s *Store) Codec() codec.Codec {
	return s.codec
}
