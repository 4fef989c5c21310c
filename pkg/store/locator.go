package store

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigDir names the environment variable holding the root of all
// configuration directories.
const EnvConfigDir = "CONFKIT_CONFIG_DIR"

// ConfigRoot returns the configured root directory. The root must be
// set and must exist.
func ConfigRoot() (string, error) {
	root := os.Getenv(EnvConfigDir)
	if root == "" {
		return "", &StoreError{Message: EnvConfigDir + " is not set"}
	}
	if err := ensureDir(root); err != nil {
		return "", err
	}
	return root, nil
}

// Resolve locates <root>/<configDirectory>/<pathSuffix>, requiring every
// component along the way to already exist as a directory. Nothing is
// created; a missing component is a configuration error, not a cue to
// scaffold.
func Resolve(configDirectory, pathSuffix string) (string, error) {
	root, err := ConfigRoot()
	if err != nil {
		return "", err
	}

	path := root
	if configDirectory != "" {
		path = filepath.Join(path, configDirectory)
		if err := ensureDir(path); err != nil {
			return "", err
		}
	}

	for _, part := range strings.Split(pathSuffix, "/") {
		if part == "" {
			continue
		}
		path = filepath.Join(path, part)
		if err := ensureDir(path); err != nil {
			return "", err
		}
	}
	return path, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &StoreError{Path: path, Message: "directory does not exist", NotFound: true, Err: err}
		}
		return &StoreError{Path: path, Message: "failed to stat directory", Err: err}
	}
	if !info.IsDir() {
		return &StoreError{Path: path, Message: "path is not a directory"}
	}
	return nil
}
