// Package manage exposes stored configurations to management callers.
//
// A Conf wraps one named configuration in a store and turns load/save
// into operations that always answer with a result string, recording
// failures in a status instead of propagating them. Services register
// their beans in a Registry at startup; a Watcher can then reload the
// matching bean whenever its file changes on disk.
package manage
