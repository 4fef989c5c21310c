package store

import "confkit/pkg/conf"

// Store persists named configuration objects. One store corresponds to
// one directory level; ChildStore descends into a named subdirectory.
type Store interface {
	// ReadOnly reports whether mutating operations are rejected.
	ReadOnly() bool

	// DirPath returns the directory this store reads and writes.
	DirPath() string

	// Save persists cfg under cfg.Name(), overwriting any previous
	// version. Last writer wins.
	Save(cfg conf.Config) error

	// Get loads the named configuration, determining the concrete type
	// from the stored document. A missing name yields a not-found
	// StoreError.
	Get(name string) (conf.Config, error)

	// GetType loads the named configuration as the given registered
	// type, overriding the document's own type attribute.
	GetType(name, typeName string) (conf.Config, error)

	// List returns the names of all stored configurations, sorted.
	List() ([]string, error)

	// ChildStore returns a store rooted at the named subdirectory,
	// creating it when absent (unless read-only).
	ChildStore(name string) (Store, error)

	// Resource loads the named resource bundle, overlaying the
	// locale-specific entries when a locale is given.
	Resource(name, locale string) (map[string]string, error)
}
