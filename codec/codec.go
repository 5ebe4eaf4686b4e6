// Package codec defines how values are turned into record file contents and
// back, and keeps a registry of codecs by file extension.
package codec

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Codec serializes values for storage. Decode must never fail: content it
// cannot parse is returned in raw form.
type Codec interface {
	Extensions() []string
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte) interface{}
}

// Unmarshaler is implemented by codecs which can decode into a typed value.
type Unmarshaler interface {
	Unmarshal(data []byte, v interface{}) error
}

var (
	mu         sync.RWMutex
	codecs     = map[string]Codec{}
	extensions = []string{}
)

// Register makes c available for each of its extensions. It panics if an
// extension is already registered.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	exts := c.Extensions()
	for _, ext := range exts {
		if _, ok := codecs[ext]; ok {
			panic(fmt.Sprintf("Codec for extension '%s' already registered", ext))
		}
		codecs[ext] = c
	}
	extensions = append(extensions, exts...)
	sort.Strings(extensions)
}

// ForExtension returns the codec registered for ext. A leading dot is
// ignored.
func ForExtension(ext string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := codecs[strings.TrimPrefix(ext, ".")]
	return c, ok
}

// Extensions returns the registered file extensions.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), extensions...)
}
