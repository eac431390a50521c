package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// UploadMetadata is one entry in the upload log.
type UploadMetadata struct {
	Filename  string `json:"filename"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
	SizeBytes uint64 `json:"size_bytes"`
}

// NewUploadMetadata stamps a metadata entry with the current time.
func NewUploadMetadata(filename, user string, sizeBytes uint64) UploadMetadata {
	return UploadMetadata{
		Filename:  filename,
		User:      user,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		SizeBytes: sizeBytes,
	}
}

// AppendMetadata appends an entry to the metadata log. The log is a
// single JSON array rewritten on every append; an unreadable log is
// replaced rather than blocking uploads.
func (fs *DiskFileStore) AppendMetadata(m UploadMetadata) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries, err := fs.readMetadata()
	if err != nil {
		fs.log.Error("Resetting unreadable metadata log", map[string]interface{}{
			"path":  fs.metadataPath,
			"error": err.Error(),
		})
		entries = nil
	}
	entries = append(entries, m)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(fs.metadataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", fs.metadataPath, err)
	}

	return nil
}

// ListMetadata returns all logged upload entries.
func (fs *DiskFileStore) ListMetadata() ([]UploadMetadata, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readMetadata()
}

func (fs *DiskFileStore) readMetadata() ([]UploadMetadata, error) {
	content, err := os.ReadFile(fs.metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata file %s: %w", fs.metadataPath, err)
	}

	var entries []UploadMetadata
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", fs.metadataPath, err)
	}
	return entries, nil
}
