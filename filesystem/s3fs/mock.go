package s3fs

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// APIError is a minimal smithy.APIError, as returned by MockClient.
type APIError struct {
	Code    string
	Message string
}

var _ smithy.APIError = &APIError{}

func (e *APIError) Error() string                 { return e.Code + ": " + e.Message }
func (e *APIError) ErrorCode() string             { return e.Code }
func (e *APIError) ErrorMessage() string          { return e.Message }
func (e *APIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

// MockClient is a thread-safe, in-memory Client for tests. The *Err fields,
// when set, are returned by the corresponding operation.
type MockClient struct {
	// PageSize limits the number of keys returned by each ListObjectsV2 call.
	// Zero means unlimited.
	PageSize int

	GetErr    error
	PutErr    error
	DeleteErr error
	HeadErr   error
	ListErr   error

	mu      sync.Mutex
	objects map[string][]byte
}

var _ Client = &MockClient{}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{objects: make(map[string][]byte)}
}

// Keys returns the sorted keys of all stored objects.
func (m *MockClient) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func noSuchKey(key string) error {
	return &APIError{Code: "NoSuchKey", Message: key}
}

func (m *MockClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, noSuchKey(aws.ToString(in.Key))
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (m *MockClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.PutErr != nil {
		return nil, m.PutErr
	}
	var data []byte
	if in.Body != nil {
		var err error
		if data, err = io.ReadAll(in.Body); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *MockClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.DeleteErr != nil {
		return nil, m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (m *MockClient) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.HeadErr != nil {
		return nil, m.HeadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &APIError{Code: "NotFound", Message: aws.ToString(in.Key)}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(time.Time{}),
	}, nil
}

func (m *MockClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)

	type item struct {
		key      string
		isPrefix bool
	}
	var items []item
	seen := map[string]bool{}
	for _, key := range m.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		if delim != "" {
			if i := strings.Index(rest, delim); i >= 0 {
				cp := prefix + rest[:i+len(delim)]
				if !seen[cp] {
					seen[cp] = true
					items = append(items, item{key: cp, isPrefix: true})
				}
				continue
			}
		}
		items = append(items, item{key: key})
	}

	// The continuation token is the last key of the previous page, so
	// objects deleted between pages do not shift later results.
	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.Search(len(items), func(i int) bool {
			return items[i].key > tok
		})
	}
	end := len(items)
	if m.PageSize > 0 && start+m.PageSize < end {
		end = start + m.PageSize
	}

	out := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(end < len(items)),
	}
	if end < len(items) {
		out.NextContinuationToken = aws.String(items[end-1].key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items[start:end] {
		if it.isPrefix {
			out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(it.key)})
			continue
		}
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(it.key),
			Size: aws.Int64(int64(len(m.objects[it.key]))),
		})
	}
	return out, nil
}
