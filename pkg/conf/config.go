package conf

import (
	"strings"
	"time"
)

// Config is implemented by every persistable configuration object.
//
// A configuration has a name, unique within the store that owns it, and a
// last-changed timestamp that moves whenever the in-memory value is
// mutated (not necessarily when it is persisted). TypeName reports the
// registered type name recorded in the document's type attribute, which
// is what allows faithful reconstruction on reload.
type Config interface {
	Name() string
	SetName(val string)
	TypeName() string
	LastChanged() time.Time
	MarkChanged()
}

// Base supplies the name and change-tracking parts of Config for
// embedding in concrete configuration types. Embedding types implement
// TypeName themselves.
type Base struct {
	name        string
	lastChanged time.Time
}

// SetName sets the configuration name.
func (b *Base) SetName(val string) {
	b.name = val
}

// Name returns the configuration name.
func (b *Base) Name() string {
	return b.name
}

// MarkChanged records that the in-memory value was mutated.
func (b *Base) MarkChanged() {
	b.lastChanged = time.Now()
}

// LastChanged returns the time of the most recent MarkChanged call.
func (b *Base) LastChanged() time.Time {
	return b.lastChanged
}

// List properties store "name=value" pairs in an ordinary string list so
// they persist through the ordinary collection machinery.

// AddListProperty appends a name=value entry to list, which may be nil.
func AddListProperty(list []string, name, val string) []string {
	return append(list, name+"="+val)
}

// GetProperty returns the value stored under name, or "" when absent.
func GetProperty(col []string, name string) string {
	key := name + "="
	for _, p := range col {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}

// RemoveProperty removes the first entry stored under name.
func RemoveProperty(list []string, name string) []string {
	key := name + "="
	for i, p := range list {
		if strings.HasPrefix(p, key) {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// SetListProperty replaces any existing entry for name with val.
func SetListProperty(list []string, name, val string) []string {
	return AddListProperty(RemoveProperty(list, name), name, val)
}
