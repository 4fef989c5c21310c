package template

import (
	"os"
	"regexp"
)

// Engine handles ${name} placeholder substitution in scalar configuration
// values. Placeholder names resolve through a Lookup function; names the
// lookup does not know are left in the text verbatim.
type Engine struct {
	// Pattern to match placeholders like ${ENV_NAME} or ${some.property}
	placeholderPattern *regexp.Regexp
}

// Lookup resolves a placeholder name to its value. The boolean reports
// whether the name is known.
type Lookup func(name string) (string, bool)

// New creates a new substitution engine.
func New() *Engine {
	return &Engine{
		placeholderPattern: regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_.\-]*)\}`),
	}
}

// Replace substitutes every resolvable ${name} placeholder in value.
// Unresolved placeholders stay as literal text.
func (e *Engine) Replace(value string, lookup Lookup) string {
	if lookup == nil {
		return value
	}

	return e.placeholderPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := e.placeholderPattern.FindStringSubmatch(match)[1]
		if replacement, ok := lookup(name); ok {
			return replacement
		}
		return match
	})
}

// Variables extracts all placeholder names referenced by value, in order
// of first appearance.
func (e *Engine) Variables(value string) []string {
	seen := make(map[string]bool)
	var names []string

	for _, match := range e.placeholderPattern.FindAllStringSubmatch(value, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// EnvLookup resolves placeholder names against process environment
// variables.
func EnvLookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapLookup builds a Lookup over vars, falling back to next for names the
// map does not contain. A nil next means map-only resolution.
func MapLookup(vars map[string]string, next Lookup) Lookup {
	return func(name string) (string, bool) {
		if val, ok := vars[name]; ok {
			return val, true
		}
		if next != nil {
			return next(name)
		}
		return "", false
	}
}
