package storage

// Storage defines the root interface for the data layer: a read-only view
// over the three record collections loaded at startup. Components should
// depend on the granular reader interfaces where they can; handlers that
// join across collections take the composed interface.
type Storage interface {
	BookReader
	UserReader
	TransactionReader
}
