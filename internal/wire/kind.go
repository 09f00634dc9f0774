package wire

// Kind classifies a canonical value for schema reporting. Integer and
// double values both report as KindNumber; timestamps report as
// KindString since they are carried as ISO-8601 strings.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
)

// KindOf returns the Kind of a canonical value produced by Decode.
// Every canonical form maps to exactly one Kind; anything else is
// treated as null.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case int64, float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindMap
	default:
		return KindNull
	}
}
