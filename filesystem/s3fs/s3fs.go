// Package s3fs implements filesystem.Filesystem on top of Amazon S3 or any
// S3-compatible object store (MinIO, R2, etc.).
//
// Paths are mapped to object keys under an optional prefix. S3 has no
// directories, so a directory is represented by a zero-byte marker object
// whose key ends in a slash. Writing a file requires the marker of its parent
// directory to exist, matching the behaviour of the local filesystem.
package s3fs

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"golang.org/x/xerrors"

	"github.com/kvpfs/kvpfs/filesystem"
)

// Client abstracts the S3 API operations used by FS. The *s3.Client type
// satisfies this interface.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// FS stores files as objects in a single bucket.
type FS struct {
	client Client
	bucket string
	prefix string
}

var _ filesystem.Filesystem = &FS{}

// New returns an FS storing objects in bucket. Prefix is prepended to all
// object keys; pass "" for no prefix.
func New(client Client, bucket, prefix string) *FS {
	return &FS{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// clean turns a filesystem path into a slash-separated path with no leading
// slash. The bucket root is "".
func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
}

func (f *FS) key(p string) string {
	p = clean(p)
	switch {
	case f.prefix == "":
		return p
	case p == "":
		return f.prefix
	}
	return f.prefix + "/" + p
}

// dirKey returns the key of the marker object for directory p. For the
// bucket root it returns the listing prefix, which has no marker.
func (f *FS) dirKey(p string) string {
	k := f.key(p)
	if k == "" {
		return ""
	}
	return k + "/"
}

func kindOf(err error) filesystem.Kind {
	var apiErr smithy.APIError
	if xerrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return filesystem.KindNotExist
		case "AccessDenied", "Forbidden":
			return filesystem.KindPermission
		}
	}
	return filesystem.KindOther
}

func wrap(op, p string, err error) error {
	if err == nil {
		return nil
	}
	return &filesystem.Error{Op: op, Path: p, Kind: kindOf(err), Err: err}
}

func notExist(op, p string) error {
	return &filesystem.Error{Op: op, Path: p, Kind: filesystem.KindNotExist, Err: fs.ErrNotExist}
}

func (f *FS) head(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	return f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
}

func (f *FS) put(ctx context.Context, key string, data []byte) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (f *FS) delete(ctx context.Context, key string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	return err
}

// isDir reports whether the marker for directory p exists. The root always
// exists.
func (f *FS) isDir(ctx context.Context, p string) (bool, error) {
	if clean(p) == "" {
		return true, nil
	}
	_, err := f.head(ctx, f.dirKey(p))
	if err == nil {
		return true, nil
	}
	if kindOf(err) == filesystem.KindNotExist {
		return false, nil
	}
	return false, err
}

// MkdirAll writes a marker for p and each of its parents.
func (f *FS) MkdirAll(ctx context.Context, p string) error {
	c := clean(p)
	if c == "" {
		return nil
	}
	parts := strings.Split(c, "/")
	for i := range parts {
		if err := f.put(ctx, f.dirKey(strings.Join(parts[:i+1], "/")), nil); err != nil {
			return wrap("mkdir", p, err)
		}
	}
	return nil
}

func (f *FS) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(p)),
	})
	if err != nil {
		return nil, wrap("read", p, err)
	}
	defer out.Body.Close() // nolint: errcheck
	data, err := io.ReadAll(out.Body)
	return data, wrap("read", p, err)
}

// WriteFile uploads data in a single PutObject call, which S3 applies
// atomically.
func (f *FS) WriteFile(ctx context.Context, p string, data []byte) error {
	ok, err := f.isDir(ctx, path.Dir(clean(p)))
	if err != nil {
		return wrap("write", p, err)
	}
	if !ok {
		return notExist("write", p)
	}
	return wrap("write", p, f.put(ctx, f.key(p), data))
}

// Remove deletes the object at p. Unlike DeleteObject, it fails when there
// is nothing to delete.
func (f *FS) Remove(ctx context.Context, p string) error {
	if _, err := f.head(ctx, f.key(p)); err != nil {
		return wrap("remove", p, err)
	}
	return wrap("remove", p, f.delete(ctx, f.key(p)))
}

// Access checks only that the object exists; S3 permissions are not
// per-object readable/writable bits.
func (f *FS) Access(ctx context.Context, p string) error {
	_, err := f.head(ctx, f.key(p))
	return wrap("access", p, err)
}

// RemoveAll deletes p and every object below it.
func (f *FS) RemoveAll(ctx context.Context, p string) error {
	prefix := f.dirKey(p)
	var token *string
	for {
		out, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(f.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return wrap("removeall", p, err)
		}
		for _, obj := range out.Contents {
			if err := f.delete(ctx, aws.ToString(obj.Key)); err != nil {
				return wrap("removeall", p, err)
			}
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	if clean(p) == "" {
		return nil
	}
	return wrap("removeall", p, f.delete(ctx, f.key(p)))
}

func (f *FS) Stat(ctx context.Context, p string) (fs.FileInfo, error) {
	name := path.Base(clean(p))
	if clean(p) == "" {
		return &fileInfo{name: ".", dir: true}, nil
	}
	out, err := f.head(ctx, f.key(p))
	if err == nil {
		return &fileInfo{
			name:    name,
			size:    aws.ToInt64(out.ContentLength),
			modTime: aws.ToTime(out.LastModified),
		}, nil
	}
	if kindOf(err) != filesystem.KindNotExist {
		return nil, wrap("stat", p, err)
	}
	out, err = f.head(ctx, f.dirKey(p))
	if err != nil {
		return nil, wrap("stat", p, err)
	}
	return &fileInfo{
		name:    name,
		dir:     true,
		modTime: aws.ToTime(out.LastModified),
	}, nil
}

// ReadDir lists the direct children of directory p, sorted by name.
func (f *FS) ReadDir(ctx context.Context, p string) ([]fs.DirEntry, error) {
	ok, err := f.isDir(ctx, p)
	if err != nil {
		return nil, wrap("readdir", p, err)
	}
	if !ok {
		return nil, notExist("readdir", p)
	}
	prefix := f.dirKey(p)
	var entries []fs.DirEntry
	var token *string
	for {
		out, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(f.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, wrap("readdir", p, err)
		}
		for _, cp := range out.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, fs.FileInfoToDirEntry(&fileInfo{name: name, dir: true}))
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" || strings.HasSuffix(name, "/") {
				// the directory's own marker
				continue
			}
			entries = append(entries, fs.FileInfoToDirEntry(&fileInfo{
				name:    name,
				size:    aws.ToInt64(obj.Size),
				modTime: aws.ToTime(obj.LastModified),
			}))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// Abs returns p as a clean, slash-separated path relative to the bucket
// prefix. Object keys have no working directory to resolve against.
func (f *FS) Abs(p string) (string, error) {
	return clean(p), nil
}

type fileInfo struct {
	name    string
	size    int64
	dir     bool
	modTime time.Time
}

var _ fs.FileInfo = &fileInfo{}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) IsDir() bool        { return i.dir }
func (i *fileInfo) Sys() interface{}   { return nil }

func (i *fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}
