package schema

import "regexp"

var attributeNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidAttributeName reports whether name matches the attribute naming rule.
func ValidAttributeName(name string) bool {
	return attributeNamePattern.MatchString(name)
}

// Environment is the attribute name to value mapping consulted and mutated
// during expansion. A present-but-empty value is falsy; an absent key is
// unknown. Both states are distinguishable via the two-value map lookup.
type Environment map[string]string

// Clone returns a shallow copy so a caller's map is never mutated by expansion.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Truthy reports whether name is present and maps to a non-empty value.
func (e Environment) Truthy(name string) bool {
	return e[name] != ""
}
