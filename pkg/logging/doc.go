// Package logging provides structured logging for confkit components.
//
// The package wraps Go's standard slog package behind package-level
// helpers that tag every entry with a subsystem label:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Store", "Saved configuration %q to %s", name, path)
//	logging.Error("Watcher", err, "Reload of %q failed", name)
//
// Subsystem labels in use:
//
//   - **Store**: configuration persistence (save/load/list)
//   - **Marshal**: XML serialization and deserialization
//   - **Manage**: management registry and managed configurations
//   - **Watcher**: filesystem change detection and auto-reload
//
// Level filtering happens at the handler, so filtered-out messages cost
// no allocation. The helpers are safe for concurrent use.
package logging
