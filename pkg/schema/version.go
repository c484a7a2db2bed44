package schema

import (
	"strconv"
	"strings"
)

// DefaultVersion is the compiled-in ceiling SetVersion clamps to.
const DefaultVersion = "17.0"

// minVersion is the floor below which SetVersion rejects a version string.
const minVersion = "9.0"

func versionNumeric(v string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(v), ".", "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetVersion records the dotted version string for the downstream target,
// exposed to expansion as the implicit pgsql-version attribute. Versions
// below the floor are rejected; versions above the compiled-in default are
// silently clamped to it rather than rejected.
func (p *Parser) SetVersion(v string) error {
	n, ok := versionNumeric(v)
	if !ok {
		return NewTargetVersionError(v)
	}
	floor, _ := versionNumeric(minVersion)
	if n < floor {
		return NewTargetVersionError(v)
	}
	ceiling, _ := versionNumeric(DefaultVersion)
	if n > ceiling {
		p.version = DefaultVersion
		return nil
	}
	p.version = v
	return nil
}
