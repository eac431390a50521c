package api

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"filebridge/auth"
	"filebridge/filestore"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	User      string `json:"user"`
	SizeBytes uint64 `json:"size_bytes"`
	Timestamp string `json:"timestamp"`
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	SendJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Message:   "Upload proxy service is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleUpload streams a multipart upload to disk and logs its
// metadata. Each file part is written as it arrives; nothing is
// buffered in memory.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(auth.UserContextKey).(string)

	reader, err := r.MultipartReader()
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid multipart data", err)
		return
	}

	var (
		filename   string
		totalBytes uint64
	)

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			SendErrorResponse(w, http.StatusBadRequest, "Failed to read multipart data", err)
			return
		}
		if part.FileName() == "" && part.FormName() != "file" {
			continue
		}

		filename = sanitizeFilename(part.FileName())
		n, err := s.store.SaveUpload(filename, part)
		part.Close()
		if err != nil {
			s.log.Error("Failed to store upload", map[string]interface{}{
				"file":  filename,
				"user":  user,
				"error": err.Error(),
			})
			SendErrorResponse(w, http.StatusInternalServerError, "Failed to store file", err)
			return
		}
		totalBytes += uint64(n)
	}

	if filename == "" {
		SendErrorResponse(w, http.StatusBadRequest, "No file uploaded", nil)
		return
	}

	meta := filestore.NewUploadMetadata(filename, user, totalBytes)
	if err := s.store.AppendMetadata(meta); err != nil {
		s.log.Error("Failed to log upload metadata", map[string]interface{}{
			"file":  filename,
			"error": err.Error(),
		})
		SendErrorResponse(w, http.StatusInternalServerError, "Failed to record upload metadata", err)
		return
	}

	s.log.Info("Upload completed", map[string]interface{}{
		"file":  filename,
		"user":  user,
		"bytes": totalBytes,
	})

	SendJSONResponse(w, http.StatusOK, UploadResponse{
		Status:    "success",
		Message:   "File uploaded successfully",
		Filename:  filename,
		User:      user,
		SizeBytes: totalBytes,
		Timestamp: meta.Timestamp,
	})
}

// sanitizeFilename strips any path components from a client-supplied
// filename and falls back to a generated name when none was sent.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "file_" + uuid.NewString()
	}
	return name
}
