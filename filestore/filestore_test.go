package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *DiskFileStore {
	t.Helper()
	dir := t.TempDir()
	return NewDiskFileStore(filepath.Join(dir, "uploads"), filepath.Join(dir, "uploads.json"))
}

func TestSaveUpload(t *testing.T) {
	store := newTestStore(t)

	n, err := store.SaveUpload("report.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if n != int64(len("pdf bytes")) {
		t.Errorf("bytes written = %d, want %d", n, len("pdf bytes"))
	}

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "report.pdf"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored contents = %q", data)
	}
}

func TestSaveUploadOverwrites(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SaveUpload("a.txt", strings.NewReader("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveUpload("a.txt", strings.NewReader("second")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("contents = %q, want %q", data, "second")
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("stream broke")
}

func TestSaveUploadRemovesPartialFileOnError(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SaveUpload("broken.bin", failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}

	if _, err := os.Stat(filepath.Join(store.BaseDir(), "broken.bin")); !os.IsNotExist(err) {
		t.Errorf("partial file left behind: %v", err)
	}
}

func TestAppendMetadata(t *testing.T) {
	store := newTestStore(t)

	if err := store.AppendMetadata(NewUploadMetadata("a.txt", "uploader", 5)); err != nil {
		t.Fatalf("AppendMetadata: %v", err)
	}
	if err := store.AppendMetadata(NewUploadMetadata("b.txt", "uploader", 7)); err != nil {
		t.Fatalf("AppendMetadata: %v", err)
	}

	entries, err := store.ListMetadata()
	if err != nil {
		t.Fatalf("ListMetadata: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Filename != "a.txt" || entries[0].SizeBytes != 5 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Filename != "b.txt" || entries[1].User != "uploader" {
		t.Errorf("second entry = %+v", entries[1])
	}
	if entries[0].Timestamp == "" {
		t.Error("timestamp must be set")
	}
}

func TestAppendMetadataResetsCorruptLog(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "uploads.json")
	if err := os.WriteFile(metaPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewDiskFileStore(filepath.Join(dir, "uploads"), metaPath)

	if err := store.AppendMetadata(NewUploadMetadata("a.txt", "uploader", 1)); err != nil {
		t.Fatalf("AppendMetadata on corrupt log: %v", err)
	}

	entries, err := store.ListMetadata()
	if err != nil {
		t.Fatalf("ListMetadata: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != "a.txt" {
		t.Errorf("entries = %+v, want single a.txt entry", entries)
	}
}

func TestListMetadataMissingFile(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.ListMetadata()
	if err != nil {
		t.Fatalf("ListMetadata: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
}
