// Package store persists configuration objects as one XML file per
// name inside a directory. A FileStore pairs a directory with a
// descriptor registry; ChildStore descends into subdirectories so a
// service can keep related configurations grouped. Stores can be opened
// read-only, which rejects Save and subdirectory creation.
//
// The directory a store operates on is normally located through
// Resolve, which walks <CONFKIT_CONFIG_DIR>/<configDirectory>/<suffix>
// and insists every component already exists. Resource bundles
// (<name>.yaml with optional <name>_<locale>.yaml overlays) ride along
// in the same directories.
package store
