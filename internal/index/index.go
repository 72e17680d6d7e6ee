package index

// DocumentIndex defines the interface for document indexing operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with fakes.
type DocumentIndex interface {
	Upsert(d DocumentRow, body string) error
	Delete(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	Search(query, kind string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
