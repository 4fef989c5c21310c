package store

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"confkit/pkg/conf"
	"confkit/pkg/logging"
)

// FileStore keeps one XML document per configuration in a single
// directory, named <name>.xml.
type FileStore struct {
	mu       sync.RWMutex
	dirPath  string
	readOnly bool
	registry *conf.Registry
	ser      *conf.Serializer
	des      *conf.Deserializer
}

// FileStore implements Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a writable store rooted at dirPath, creating the
// directory when absent.
func NewFileStore(registry *conf.Registry, dirPath string) (*FileStore, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, &StoreError{Path: dirPath, Message: "failed to create store directory", Err: err}
	}
	return newFileStore(registry, dirPath, false), nil
}

// NewReadOnlyFileStore creates a read-only store rooted at dirPath,
// which must already exist.
func NewReadOnlyFileStore(registry *conf.Registry, dirPath string) (*FileStore, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreError{Path: dirPath, Message: "store directory does not exist", NotFound: true, Err: err}
		}
		return nil, &StoreError{Path: dirPath, Message: "failed to stat store directory", Err: err}
	}
	if !info.IsDir() {
		return nil, &StoreError{Path: dirPath, Message: "store path is not a directory"}
	}
	return newFileStore(registry, dirPath, true), nil
}

func newFileStore(registry *conf.Registry, dirPath string, readOnly bool) *FileStore {
	return &FileStore{
		dirPath:  dirPath,
		readOnly: readOnly,
		registry: registry,
		ser:      conf.NewSerializer(registry),
		des:      conf.NewDeserializer(registry),
	}
}

// ReadOnly reports whether the store rejects Save and subdirectory
// creation.
func (fs *FileStore) ReadOnly() bool {
	return fs.readOnly
}

// DirPath returns the directory this store operates on.
func (fs *FileStore) DirPath() string {
	return fs.dirPath
}

// Save writes cfg to <dir>/<name>.xml, replacing any previous content.
func (fs *FileStore) Save(cfg conf.Config) error {
	if fs.readOnly {
		return &StoreError{Path: fs.dirPath, Message: "store is read-only"}
	}

	name := cfg.Name()
	if err := validateName(name); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	// Serialize into memory first so a marshalling failure never
	// truncates the existing file.
	var buf bytes.Buffer
	if err := fs.ser.Serialize(cfg, &buf); err != nil {
		return &StoreError{Path: fs.configPath(name), Message: "failed to serialize " + name, Err: err}
	}

	filePath := fs.configPath(name)
	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return &StoreError{Path: filePath, Message: "failed to write " + name, Err: err}
	}

	logging.Info("Store", "Saved configuration %s to %s", name, filePath)
	return nil
}

// Get loads the named configuration, resolving the concrete type from
// the document's type attribute.
func (fs *FileStore) Get(name string) (conf.Config, error) {
	return fs.load(name, "")
}

// GetType loads the named configuration as typeName regardless of the
// document's own type attribute.
func (fs *FileStore) GetType(name, typeName string) (conf.Config, error) {
	return fs.load(name, typeName)
}

func (fs *FileStore) load(name, typeName string) (conf.Config, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	filePath := fs.configPath(name)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreError{Path: filePath, Message: "configuration " + name + " not found", NotFound: true, Err: err}
		}
		return nil, &StoreError{Path: filePath, Message: "failed to read " + name, Err: err}
	}

	cfg, err := fs.des.Deserialize(bytes.NewReader(data), typeName)
	if err != nil {
		return nil, &StoreError{Path: filePath, Message: "failed to deserialize " + name, Err: err}
	}
	cfg.SetName(name)

	logging.Info("Store", "Loaded configuration %s from %s", name, filePath)
	return cfg, nil
}

// List returns the sorted names of all configurations in the store.
func (fs *FileStore) List() ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	matches, err := filepath.Glob(filepath.Join(fs.dirPath, "*.xml"))
	if err != nil {
		return nil, &StoreError{Path: fs.dirPath, Message: "failed to list store directory", Err: err}
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".xml"))
	}
	sort.Strings(names)
	return names, nil
}

// ChildStore returns a store for the named subdirectory, creating it
// when absent. Read-only stores cannot create subdirectories.
func (fs *FileStore) ChildStore(name string) (Store, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	childPath := filepath.Join(fs.dirPath, name)
	info, err := os.Stat(childPath)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, &StoreError{Path: childPath, Message: "child store path is not a directory"}
		}
	case os.IsNotExist(err):
		if fs.readOnly {
			return nil, &StoreError{Path: childPath, Message: "cannot create child store in read-only store", NotFound: true}
		}
		if err := os.Mkdir(childPath, 0755); err != nil {
			return nil, &StoreError{Path: childPath, Message: "failed to create child store directory", Err: err}
		}
	default:
		return nil, &StoreError{Path: childPath, Message: "failed to stat child store path", Err: err}
	}

	return newFileStore(fs.registry, childPath, fs.readOnly), nil
}

func (fs *FileStore) configPath(name string) string {
	return filepath.Join(fs.dirPath, name+".xml")
}

// validateName rejects names that would escape the store directory.
func validateName(name string) error {
	if name == "" {
		return &StoreError{Message: "configuration name cannot be empty"}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &StoreError{Message: "invalid configuration name " + name}
	}
	return nil
}
