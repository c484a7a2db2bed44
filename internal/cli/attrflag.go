package cli

import (
	"fmt"
	"strings"

	"github.com/pgschema-labs/pgschema/pkg/schema"
)

// parseAttrFlags turns a repeated --attr k=v flag's values into an
// Environment. A value with no '=' is rejected.
func parseAttrFlags(pairs []string) (schema.Environment, error) {
	env := schema.Environment{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --attr %q: expected key=value", pair)
		}
		env[k] = v
	}
	return env, nil
}
