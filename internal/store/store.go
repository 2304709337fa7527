// Package store persists a block document as a YAML file.
package store

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/blockpad/block"
)

// FormatVersion is written to every saved file.
const FormatVersion = 1

const tempPrefix = ".blockpad-tmp-"

var (
	// ErrNotFound is returned by Load when the document file does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedVersion is returned for files written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

type file struct {
	Version int           `yaml:"version"`
	Blocks  []block.Block `yaml:"blocks"`
}

// Store reads and writes one document file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document file path.
func (s *Store) Path() string { return s.path }

// Load reads the document blocks. The result is not normalized; pass it to
// block.New.
func (s *Store) Load() ([]block.Block, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, s.path)
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse %s", s.path)
	}
	if f.Version > FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "%s has version %d", s.path, f.Version)
	}
	return f.Blocks, nil
}

// Save writes blocks atomically: a temp file in the same directory is synced
// and then renamed over the target.
func (s *Store) Save(blocks []block.Block) error {
	data, err := yaml.Marshal(file{Version: FormatVersion, Blocks: blocks})
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create document directory")
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "rename temp file to %s", s.path)
	}
	return nil
}
