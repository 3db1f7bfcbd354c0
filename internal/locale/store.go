package locale

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrInvalid is returned by Load when the locale file exists but does not
// hold a JSON object.
var ErrInvalid = errors.New("not a valid JSON object")

// Store loads and saves locale dictionaries on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store on fsys.
func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Load reads the dictionary at path. A missing file yields an empty
// dictionary. A file that is not a JSON object yields an empty dictionary
// together with an error wrapping ErrInvalid, so callers can decide whether
// to carry on.
func (s *Store) Load(path string) (*Dictionary, error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDictionary(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return NewDictionary(), fmt.Errorf("%s: %w", path, ErrInvalid)
	}

	d := NewDictionary()
	if err := d.UnmarshalJSON(data); err != nil {
		return NewDictionary(), fmt.Errorf("%s: %w: %w", path, ErrInvalid, err)
	}
	return d, nil
}

// Save writes d to path, creating parent directories as needed. The file is
// replaced in full.
func (s *Store) Save(path string, d *Dictionary) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create locale directory: %w", err)
		}
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write locale file: %w", err)
	}
	return nil
}
