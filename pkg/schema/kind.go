package schema

// Kind selects the textual artifact an object's schema template expands into.
type Kind int

const (
	SQL Kind = iota
	XML
)

func (k Kind) String() string {
	if k == XML {
		return "xml"
	}
	return "sql"
}

// Dir returns the schema-file-layout directory name for this kind,
// consulted by a FileResolver implementation (pkg/schema/resolver).
func (k Kind) Dir() string { return k.String() }
