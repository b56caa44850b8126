package dirs

// Value is a single node of a decoded configuration document.
// The parser only ever needs to view a value as a table or as text.
type Value interface {
	AsTable() (Table, bool)
	AsString() (string, bool)
}

// Table is a key/value view of a Value.
type Table interface {
	Get(key string) (Value, bool)
}

// FromAny wraps a value produced by a generic document decoder
// (toml, yaml, json or koanf) so that it can be passed to Parse.
func FromAny(v any) Value {
	return anyValue{v: v}
}

// Values wraps every element of vs with FromAny.
func Values(vs []any) []Value {
	result := make([]Value, 0, len(vs))
	for _, v := range vs {
		result = append(result, FromAny(v))
	}
	return result
}

type anyValue struct {
	v any
}

func (a anyValue) AsTable() (Table, bool) {
	switch m := a.v.(type) {
	case map[string]any:
		return stringTable(m), true
	case map[any]any:
		return anyTable(m), true
	}
	return nil, false
}

func (a anyValue) AsString() (string, bool) {
	s, ok := a.v.(string)
	return s, ok
}

type stringTable map[string]any

func (t stringTable) Get(key string) (Value, bool) {
	v, found := t[key]
	if !found {
		return nil, false
	}
	return anyValue{v: v}, true
}

// anyTable is what older yaml decoders produce for nested mappings.
type anyTable map[any]any

func (t anyTable) Get(key string) (Value, bool) {
	v, found := t[key]
	if !found {
		return nil, false
	}
	return anyValue{v: v}, true
}
