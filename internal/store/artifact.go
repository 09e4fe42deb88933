package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Artifact represents a saved board snapshot on disk.
type Artifact struct {
	ID        string
	Filename  string
	Path      string
	Width     int
	Height    int
	SizeBytes int64
	CreatedAt time.Time
}

// ArtifactRepository provides CRUD operations for saved artifacts.
type ArtifactRepository struct {
	db *sql.DB
}

// Artifacts returns the artifact repository for this store.
func (s *Store) Artifacts() *ArtifactRepository {
	return &ArtifactRepository{db: s.db}
}

// Create inserts a new artifact into the database.
func (r *ArtifactRepository) Create(a *Artifact) error {
	a.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO artifacts (id, filename, path, width, height, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Filename, a.Path, a.Width, a.Height, a.SizeBytes, a.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an artifact by its ID.
func (r *ArtifactRepository) GetByID(id string) (*Artifact, error) {
	a := &Artifact{}

	err := r.db.QueryRow(
		`SELECT id, filename, path, width, height, size_bytes, created_at
		 FROM artifacts WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.Filename, &a.Path, &a.Width, &a.Height, &a.SizeBytes, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

// List retrieves all artifacts, newest first.
func (r *ArtifactRepository) List() ([]*Artifact, error) {
	rows, err := r.db.Query(
		`SELECT id, filename, path, width, height, size_bytes, created_at
		 FROM artifacts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		a := &Artifact{}
		err := rows.Scan(&a.ID, &a.Filename, &a.Path, &a.Width, &a.Height, &a.SizeBytes, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// Delete removes an artifact record by its ID.
func (r *ArtifactRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
