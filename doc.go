/*
Package kvpfs provides a key-value store which keeps each value in its own
file. There is no database process, no index and no transaction log: a store
is a directory tree which can be inspected, edited and backed up with
ordinary tools.

General Usage

	store, err := kvpfs.New(ctx, &kvpfs.Options{
		RootPath:    "/var/lib/myapp/db",
		Collections: []string{"users"},
	})
	if err != nil {
		return err
	}
	err = store.Put(ctx, "users", "alice", map[string]string{"name": "Alice"})
	value, found, err := store.Get(ctx, "users", "alice")

Layout

Collections are directories under the root path. A record is a single file
named by the file prefix, the key and the file extension:

	<root>/<collection>/<prefix><key>.<extension>

With the defaults, key "alice" in collection "users" is stored in
./db/users/_key_alice.json. Names are used verbatim, without escaping or
case folding, so collection names and keys may not contain a path separator.

Collections must be created, with CreateCollection or Options.Collections,
before records are written to them. Writing to a missing collection fails
with an error of kind KindCollectionNotFound.

Missing records are not errors. Get reports them with found == false, Exists
returns false and Remove returns false.

Codecs

Values are serialized by a codec.Codec. The default JSON codec stores strings
unchanged and JSON-encodes everything else; when reading, content which is not
valid JSON is returned as a string. Other codecs are selected by file
extension once their package is imported:

	import _ "github.com/kvpfs/kvpfs/codec/yamlcodec"

	store, err := kvpfs.New(ctx, &kvpfs.Options{FileExtension: "yaml"})

Filesystems

All I/O goes through a filesystem.Filesystem. The default is the local
filesystem; package s3fs stores collections in an S3 bucket instead.
*/
package kvpfs
