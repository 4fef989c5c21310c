package store

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"confkit/pkg/logging"
)

// Resource loads the named resource bundle from <dir>/<name>.yaml as a
// flat string map. When locale is non-empty and <name>_<locale>.yaml
// exists, its entries overlay the base entries. A missing base file is
// a not-found StoreError; a missing locale file is not an error.
func (fs *FileStore) Resource(name, locale string) (map[string]string, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	base, err := fs.readBundle(name+".yaml", true)
	if err != nil {
		return nil, err
	}

	if locale != "" {
		overlay, err := fs.readBundle(name+"_"+locale+".yaml", false)
		if err != nil {
			return nil, err
		}
		for k, v := range overlay {
			base[k] = v
		}
	}

	logging.Info("Store", "Loaded resource bundle %s (locale %q) with %d entries", name, locale, len(base))
	return base, nil
}

// readBundle parses one bundle file. When required is false a missing
// file yields an empty map.
func (fs *FileStore) readBundle(filename string, required bool) (map[string]string, error) {
	filePath := filepath.Join(fs.dirPath, filename)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if !required {
				return map[string]string{}, nil
			}
			return nil, &StoreError{Path: filePath, Message: "resource bundle not found", NotFound: true, Err: err}
		}
		return nil, &StoreError{Path: filePath, Message: "failed to read resource bundle", Err: err}
	}

	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &StoreError{Path: filePath, Message: "failed to parse resource bundle", Err: err}
	}
	return entries, nil
}
