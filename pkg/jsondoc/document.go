package jsondoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

// Document is a single JSON file managed with read-modify-write
// semantics. Writes go through a temp file plus rename so a document is
// never left torn, and a per-document mutex serializes writers within
// the process. Concurrent processes still race last-write-wins.
type Document struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Document {
	return &Document{path: path}
}

func (d *Document) Path() string {
	return d.path
}

// Read decodes the document into dest. A missing file is reported via
// os.ErrNotExist so callers can choose their own default.
func (d *Document) Read(dest any) error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(d.path), err)
	}
	return nil
}

// Write replaces the document contents atomically.
func (d *Document) Write(src any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(src)
}

// Update runs the read-modify-write cycle under the document lock: the
// current contents are decoded into doc, mutate applies the change, and
// the full document is written back. A missing or unparsable document
// is treated as empty, matching the degrade-to-defaults read path.
func (d *Document) Update(doc any, mutate func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if raw, err := os.ReadFile(d.path); err == nil {
		// Corrupt contents are discarded; the next write repairs the file.
		_ = json.Unmarshal(raw, doc)
		ensureMap(doc)
	}

	if err := mutate(); err != nil {
		return err
	}
	return d.write(doc)
}

// ensureMap re-initializes a map target that a literal JSON null
// unmarshaled to nil, so mutate closures can assign into it.
func ensureMap(doc any) {
	v := reflect.ValueOf(doc)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()
	if elem.Kind() == reflect.Map && elem.IsNil() {
		elem.Set(reflect.MakeMap(elem.Type()))
	}
}

func (d *Document) write(src any) error {
	raw, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(d.path), err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(d.path), err)
	}
	return nil
}
