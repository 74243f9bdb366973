// Package settings provides a persistent key/value store kept in a single
// JSON object document on disk.
//
// Every operation re-reads and re-parses the whole document through the
// store's open file handle, applies one logical change in memory and, for
// mutations, rewrites the file in place. Nothing is cached between calls.
//
// A Store assumes it is the only writer of its file. It is not safe for
// concurrent use, and two stores pointed at the same path can lose updates.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const emptyDocument = "{}"

// Entry is a single key/value pair of the settings document.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the filesystem the store opens its document on.
func WithFS(fsys afero.Fs) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

// Store holds the open settings document.
type Store struct {
	fs   afero.Fs
	file afero.File
	log  zerolog.Logger
	path string
}

// Open opens the settings document at path, creating it with an empty
// object if it does not exist yet. Existing content is not validated until
// the first access.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		fs:   afero.NewOsFs(),
		log:  zerolog.Nop(),
		path: path,
	}
	for _, opt := range opts {
		opt(s)
	}

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, ioError("open", err)
	}

	if !exists {
		file, err := s.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			return nil, ioError("open", err)
		}
		if _, err := file.WriteString(emptyDocument); err != nil {
			_ = file.Close()
			return nil, ioError("open", err)
		}
		s.log.Debug().Str("path", path).Msg("created settings document")
		s.file = file
		return s, nil
	}

	file, err := s.fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, ioError("open", err)
	}
	s.file = file
	return s, nil
}

// Path returns the location of the settings document.
func (s *Store) Path() string {
	return s.path
}

// Close releases the file handle. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return ioError("close", err)
	}
	return nil
}

// Load decodes the value stored under key into dst.
func (s *Store) Load(key string, dst any) error {
	return s.apply("get", false, func(doc map[string]json.RawMessage) error {
		raw, ok := doc[key]
		if !ok {
			return notFoundError("get", key)
		}
		if isNull(raw) && !acceptsNull(dst) {
			return typeError("get", key,
				fmt.Errorf("cannot decode null into %s", reflect.TypeOf(dst).Elem()))
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return typeError("get", key, err)
		}
		return nil
	})
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// acceptsNull reports whether dst points at a value that can represent JSON
// null. Anything else would silently decode null as its zero value.
func acceptsNull(dst any) bool {
	if _, ok := dst.(json.Unmarshaler); ok {
		return true
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		// json.Unmarshal reports invalid targets itself.
		return true
	}
	switch rv.Elem().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// Get returns the value stored under key decoded as T.
func Get[T any](s *Store, key string) (T, error) {
	var value T
	if err := s.Load(key, &value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// HasValue reports whether key is present in the document.
func (s *Store) HasValue(key string) (bool, error) {
	var found bool
	err := s.apply("has", false, func(doc map[string]json.RawMessage) error {
		_, found = doc[key]
		return nil
	})
	return found, err
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value any) error {
	return s.apply("set", true, func(doc map[string]json.RawMessage) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return typeError("set", key, err)
		}
		doc[key] = raw
		return nil
	})
}

// Clear removes key from the document. Clearing an absent key is not an
// error.
func (s *Store) Clear(key string) error {
	return s.apply("clear", true, func(doc map[string]json.RawMessage) error {
		delete(doc, key)
		return nil
	})
}

// ListValues returns every entry of the document ordered by key.
func (s *Store) ListValues() ([]Entry, error) {
	var entries []Entry
	err := s.apply("list", false, func(doc map[string]json.RawMessage) error {
		entries = make([]Entry, 0, len(doc))
		for key, value := range doc {
			entries = append(entries, Entry{Key: key, Value: value})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Key < entries[j].Key
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// apply runs fn against a freshly decoded copy of the document. When
// writeBack is set and fn succeeds, the document is rewritten in place.
func (s *Store) apply(op string, writeBack bool, fn func(doc map[string]json.RawMessage) error) error {
	data, err := s.read(op)
	if err != nil {
		return err
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return corruptedError(op, err)
	}

	if err := fn(doc); err != nil {
		return err
	}

	if !writeBack {
		return nil
	}
	return s.write(op, doc)
}

func (s *Store) read(op string) ([]byte, error) {
	if s.file == nil {
		return nil, ioError(op, fs.ErrClosed)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, ioError(op, err)
	}
	data, err := io.ReadAll(s.file)
	if err != nil {
		return nil, ioError(op, err)
	}
	return data, nil
}

func (s *Store) write(op string, doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return typeError(op, "", err)
	}
	if err := s.replace(op, data); err != nil {
		return err
	}
	s.log.Debug().Str("op", op).Int("bytes", len(data)).Msg("wrote settings document")
	return nil
}

// replace overwrites the whole file content through the open handle.
func (s *Store) replace(op string, data []byte) error {
	if s.file == nil {
		return ioError(op, fs.ErrClosed)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return ioError(op, err)
	}
	if err := s.file.Truncate(0); err != nil {
		return ioError(op, err)
	}
	if _, err := s.file.Write(data); err != nil {
		return ioError(op, err)
	}
	return nil
}

// decodeDocument parses data as a JSON object keyed by setting name.
func decodeDocument(data []byte) (map[string]json.RawMessage, error) {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller with the corrupted kind
	}

	root = bytes.TrimSpace(root)
	if len(root) == 0 || root[0] != '{' {
		return nil, errRootNotObject
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(root, &doc); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller with the corrupted kind
	}
	return doc, nil
}

// isNotExist matches missing files on both real and in-memory filesystems.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
