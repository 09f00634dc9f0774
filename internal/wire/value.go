// Package wire defines the document store's tagged value representation
// and its decoding into canonical in-memory values.
package wire

// Value is the tagged union the store uses for a single stored field.
// At most one of the value fields is set; a Value with no recognized
// tag decodes to nil.
type Value struct {
	StringValue    *string     `json:"stringValue,omitempty"`
	IntegerValue   *int64      `json:"integerValue,omitempty"`
	DoubleValue    *float64    `json:"doubleValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	TimestampValue *string     `json:"timestampValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
	MapValue       *MapValue   `json:"mapValue,omitempty"`
}

// ArrayValue holds the elements of an array-tagged value.
type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// MapValue holds the named entries of a map-tagged value.
type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// Decode converts a wire Value into its canonical in-memory form:
// nil, bool, int64, float64, string, []any, or map[string]any.
// Arrays and maps are decoded recursively. Decode is total — a nil
// input or an unrecognized tag yields nil rather than an error.
func Decode(v *Value) any {
	if v == nil {
		return nil
	}

	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		return *v.IntegerValue
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.TimestampValue != nil:
		return *v.TimestampValue
	case v.ArrayValue != nil:
		elems := make([]any, 0, len(v.ArrayValue.Values))
		for i := range v.ArrayValue.Values {
			elems = append(elems, Decode(&v.ArrayValue.Values[i]))
		}
		return elems
	case v.MapValue != nil:
		entries := make(map[string]any, len(v.MapValue.Fields))
		for name, child := range v.MapValue.Fields {
			entries[name] = Decode(&child)
		}
		return entries
	default:
		return nil
	}
}
