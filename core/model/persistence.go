package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

// DefaultPath is the model file used when no path is configured.
const DefaultPath = "thetas.json"

// record is the on-disk layout. Pointer fields let Load tell a missing key
// from an explicit zero.
type record struct {
	Theta0 *float64 `json:"theta0"`
	Theta1 *float64 `json:"theta1"`
}

// Store reads and writes Thetas as JSON at Path on Fs.
//
// 使用例:
//
//	store := model.NewStore(afero.NewOsFs(), "thetas.json")
//	if err := store.Save(thetas); err != nil { ... }
//	thetas, err := store.Load()
type Store struct {
	Fs   afero.Fs
	Path string
}

// NewStore creates a Store. An empty path falls back to DefaultPath.
func NewStore(fs afero.Fs, path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Fs: fs, Path: path}
}

// Save writes thetas, replacing any existing file. The data is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save(t Thetas) error {
	var buf bytes.Buffer
	if err := SaveThetasToWriter(t, &buf); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create model directory %s", dir)
	}

	tmp := s.Path + ".tmp"
	if err := afero.WriteFile(s.Fs, tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write model file %s", tmp)
	}
	if err := s.Fs.Rename(tmp, s.Path); err != nil {
		_ = s.Fs.Remove(tmp)
		return errors.Wrapf(err, "failed to move model file into %s", s.Path)
	}
	return nil
}

// Load reads the stored thetas. A missing file yields the zero model without
// an error, and a missing field reads as 0, so prediction works before any
// training has happened. A file that exists but is not valid JSON is an error.
func (s *Store) Load() (Thetas, error) {
	f, err := s.Fs.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Thetas{}, nil
		}
		return Thetas{}, errors.Wrapf(err, "failed to open model file %s", s.Path)
	}
	defer f.Close()

	t, err := LoadThetasFromReader(f)
	if err != nil {
		return Thetas{}, errors.Wrapf(err, "failed to read model file %s", s.Path)
	}
	return t, nil
}

// SaveThetasToWriter encodes thetas as a JSON object with theta0 and theta1.
func SaveThetasToWriter(t Thetas, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(t); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadThetasFromReader decodes a JSON model. Absent fields default to 0.
func LoadThetasFromReader(r io.Reader) (Thetas, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Thetas{}, errors.Wrap(err, "failed to decode model")
	}

	var t Thetas
	if rec.Theta0 != nil {
		t.Theta0 = *rec.Theta0
	}
	if rec.Theta1 != nil {
		t.Theta1 = *rec.Theta1
	}
	return t, nil
}
