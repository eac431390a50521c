package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"filebridge/logger"
)

// DiskFileStore persists uploaded files under a base directory and
// keeps the upload metadata log alongside them.
type DiskFileStore struct {
	baseDir      string
	metadataPath string
	log          *logger.Logger

	// Serializes the read-modify-write cycle on the metadata file.
	mu sync.Mutex
}

// NewDiskFileStore creates a store rooted at baseDir. The directory is
// created lazily on first write.
func NewDiskFileStore(baseDir, metadataPath string) *DiskFileStore {
	return &DiskFileStore{
		baseDir:      baseDir,
		metadataPath: metadataPath,
		log:          logger.L(),
	}
}

// BaseDir reports the directory uploads are written to.
func (fs *DiskFileStore) BaseDir() string {
	return fs.baseDir
}

func (fs *DiskFileStore) ensureDir() error {
	if err := os.MkdirAll(fs.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory %s: %w", fs.baseDir, err)
	}
	return nil
}

// SaveUpload streams the reader to a file under the base directory and
// returns the number of bytes written. The name must already be
// sanitized to a bare filename.
func (fs *DiskFileStore) SaveUpload(name string, r io.Reader) (int64, error) {
	if err := fs.ensureDir(); err != nil {
		return 0, err
	}

	path := filepath.Join(fs.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to flush file %s: %w", path, err)
	}

	fs.log.Info("Stored upload", map[string]interface{}{
		"file":  path,
		"bytes": n,
	})

	return n, nil
}
