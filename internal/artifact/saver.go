// Package artifact persists saved board snapshots to disk and records
// them in the store.
package artifact

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/chitram/internal/store"
)

// Saver writes board snapshots as PNG files under a directory and
// records each file in the artifact repository. It implements the
// board's save sink.
type Saver struct {
	dir  string
	repo *store.ArtifactRepository
}

// NewSaver creates a Saver writing into dir, creating it if needed.
// The repository may be nil, in which case files are written without
// database records.
func NewSaver(dir string, repo *store.ArtifactRepository) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &Saver{dir: dir, repo: repo}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Saver) Dir() string {
	return s.dir
}

// Write encodes the image to a PNG file named filename and records it.
func (s *Saver) Write(filename string, img gocv.Mat) error {
	path := filepath.Join(s.dir, filename)

	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("failed to write %s", path)
	}

	if s.repo == nil {
		return nil
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	a := &store.Artifact{
		ID:        uuid.NewString(),
		Filename:  filename,
		Path:      path,
		Width:     img.Cols(),
		Height:    img.Rows(),
		SizeBytes: size,
	}
	if err := s.repo.Create(a); err != nil {
		// The file is already on disk; keep it and report the record failure.
		log.Printf("artifact: failed to record %s: %v", filename, err)
		return fmt.Errorf("failed to record artifact: %w", err)
	}

	return nil
}

// Remove deletes an artifact's file and its database record.
func (s *Saver) Remove(a *store.Artifact) error {
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", a.Path, err)
	}
	if s.repo == nil {
		return nil
	}
	return s.repo.Delete(a.ID)
}
