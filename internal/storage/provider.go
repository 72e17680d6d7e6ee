// Package storage defines the data-directory file-system abstraction.
package storage

import "github.com/starford/mannaz/internal/models"

// Provider is the interface for record file operations. All paths are
// relative to the data root.
type Provider interface {
	// List returns metadata for every .md file under dir. A dir that does
	// not exist yet yields an empty list.
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent
	// directories as needed.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
