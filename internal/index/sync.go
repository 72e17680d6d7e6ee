package index

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/mannaz/internal/document"
	"github.com/starford/mannaz/internal/reminders"
	"github.com/starford/mannaz/internal/staff"
	"github.com/starford/mannaz/internal/storage"
	"github.com/starford/mannaz/internal/transcripts"
)

// Kind labels assigned to indexed documents by their location in the
// data directory.
const (
	KindProfile    = "profile"
	KindTranscript = "transcript"
	KindReminders  = "reminders"
	KindDocument   = "document"
)

// Sync walks the data directory and brings the index up to date:
//   - new/changed files are decoded and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.Delete(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile reads one document from the store and upserts it. Write paths
// call it right after mutating a file so search stays current without a
// full sync.
func IndexFile(db *DB, store storage.Provider, path string) error {
	data, err := store.Read(path)
	if err != nil {
		return err
	}
	return indexFile(db, path, data)
}

// indexFile decodes data and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	doc := document.Decode(data)
	row := DocumentRow{
		Path:      path,
		Kind:      Classify(path),
		Title:     deriveTitle(doc, path),
		Checksum:  storage.Checksum(data),
		UpdatedAt: time.Now(),
	}
	return db.Upsert(row, doc.Body)
}

// Classify maps a store path to its document kind.
func Classify(path string) string {
	switch {
	case path == reminders.Path:
		return KindReminders
	case strings.HasPrefix(path, staff.Dir+"/"):
		return KindProfile
	case strings.HasPrefix(path, transcripts.Dir+"/"):
		return KindTranscript
	default:
		return KindDocument
	}
}

// ValidKind reports whether kind is one of the labels Classify assigns.
func ValidKind(kind string) bool {
	switch kind {
	case KindProfile, KindTranscript, KindReminders, KindDocument:
		return true
	}
	return false
}

// deriveTitle picks a display title: header name, then header title, then
// the first H1 line, then the filename stem.
func deriveTitle(doc document.Document, path string) string {
	if name := doc.Header["name"]; name != "" {
		return name
	}
	if title := doc.Header["title"]; title != "" {
		return title
	}
	for _, line := range strings.Split(doc.Body, "\n") {
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
