package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
)

// Directory permissions for snapshot stores.
const storeDirPerm = 0o750

// Store reads and writes migration response snapshots under one directory.
type Store struct {
	dir   string
	codec Codec
}

// NewStore creates a store rooted at dir using the given codec. A nil codec
// defaults to JSON.
func NewStore(dir string, codec Codec) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}

	return &Store{dir: dir, codec: codec}
}

// Path returns the on-disk path for a snapshot name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+s.codec.Extension())
}

// Save writes a response snapshot under name, creating the store directory
// as needed.
func (s *Store) Save(name string, resp *flowdata.MigrationResponse) error {
	mkErr := os.MkdirAll(s.dir, storeDirPerm)
	if mkErr != nil {
		return fmt.Errorf("create snapshot dir: %w", mkErr)
	}

	f, createErr := os.Create(s.Path(name))
	if createErr != nil {
		return fmt.Errorf("create snapshot %s: %w", name, createErr)
	}

	encodeErr := s.codec.Encode(f, resp)

	closeErr := f.Close()

	if encodeErr != nil {
		return fmt.Errorf("write snapshot %s: %w", name, encodeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close snapshot %s: %w", name, closeErr)
	}

	return nil
}

// Load reads the snapshot stored under name.
func (s *Store) Load(name string) (*flowdata.MigrationResponse, error) {
	f, openErr := os.Open(s.Path(name))
	if openErr != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", name, openErr)
	}

	defer f.Close()

	var resp flowdata.MigrationResponse

	decodeErr := s.codec.Decode(f, &resp)
	if decodeErr != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, decodeErr)
	}

	return &resp, nil
}
