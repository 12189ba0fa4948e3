package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/welltyped-systems/binsolver-go/sdkerrors"
)

// Fields is an untyped set of entity fields keyed by either the canonical
// (snake_case) or the wire (camelCase) spelling. It is the input of the
// *FromFields constructors and what JSON or YAML documents decode into.
type Fields map[string]any

// fieldError locates a problem inside a (possibly nested) record.
type fieldError struct {
	field   string
	message string
}

func (e *fieldError) Error() string { return e.field + ": " + e.message }

func (e *fieldError) validation() *sdkerrors.ValidationError {
	return &sdkerrors.ValidationError{Field: e.field, Message: e.message}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// decodeDocument parses exactly one JSON value. Numbers are kept as
// json.Number; anything but whitespace after the value is an error.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return raw, nil
}

// toMap returns v as a string-keyed map when it is one.
func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Fields:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// asList returns v as a list of elements when it is a slice of records.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []Fields:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []Item:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []Bin:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	default:
		return nil, false
	}
}

// record is a resolved set of fields keyed by canonical name. Reads record the
// first problem encountered; callers check err once at the end.
type record struct {
	path   string
	values map[string]any
	err    *fieldError
}

// resolve maps every key of in to its canonical name. When both spellings of
// a field are present the canonical spelling wins. Nil values count as absent.
// In strict mode unknown keys are rejected; otherwise they are dropped.
func resolve(path string, in map[string]any, aliases Aliases, strict bool) (*record, *fieldError) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &record{path: path, values: make(map[string]any, len(in))}
	var canonicalKeys []string
	for _, k := range keys {
		canonical, ok := aliases.Canonical(k)
		if !ok {
			if strict {
				return nil, &fieldError{field: joinPath(path, k), message: "unknown field"}
			}
			continue
		}
		if in[k] == nil {
			continue
		}
		if k == canonical {
			canonicalKeys = append(canonicalKeys, k)
			continue
		}
		r.values[canonical] = in[k]
	}
	for _, k := range canonicalKeys {
		r.values[k] = in[k]
	}
	return r, nil
}

func (r *record) fail(name, message string) {
	if r.err == nil {
		r.err = &fieldError{field: joinPath(r.path, name), message: message}
	}
}

func (r *record) failWith(err *fieldError) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *record) field(name string) string { return joinPath(r.path, name) }

func (r *record) lookup(name string, required bool) (any, bool) {
	v, ok := r.values[name]
	if !ok && required {
		r.fail(name, "required field missing")
	}
	return v, ok
}

func (r *record) str(name string, required bool) Opt[string] {
	v, ok := r.lookup(name, required)
	if !ok {
		return None[string]()
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, fmt.Sprintf("expected string, got %T", v))
		return None[string]()
	}
	return Some(s)
}

func (r *record) measure(name string, required bool) Opt[float64] {
	v, ok := r.lookup(name, required)
	if !ok {
		return None[float64]()
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(name, fmt.Sprintf("expected number, got %T", v))
		return None[float64]()
	}
	return Some(f)
}

func (r *record) count(name string, required bool) Opt[int] {
	v, ok := r.lookup(name, required)
	if !ok {
		return None[int]()
	}
	n, ok := toCount(v)
	if !ok {
		r.fail(name, fmt.Sprintf("expected whole number, got %v", v))
		return None[int]()
	}
	return Some(n)
}

func (r *record) flag(name string) Opt[bool] {
	v, ok := r.lookup(name, false)
	if !ok {
		return None[bool]()
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, fmt.Sprintf("expected boolean, got %T", v))
		return None[bool]()
	}
	return Some(b)
}

func (r *record) strs(name string) Opt[[]string] {
	v, ok := r.lookup(name, false)
	if !ok {
		return None[[]string]()
	}
	switch list := v.(type) {
	case []string:
		return Some(append([]string(nil), list...))
	case []any:
		out := make([]string, 0, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				r.fail(indexPath(name, i), fmt.Sprintf("expected string, got %T", e))
				return None[[]string]()
			}
			out = append(out, s)
		}
		return Some(out)
	default:
		r.fail(name, fmt.Sprintf("expected list, got %T", v))
		return None[[]string]()
	}
}

func (r *record) list(name string, required bool) ([]any, bool) {
	v, ok := r.lookup(name, required)
	if !ok {
		return nil, false
	}
	list, ok := asList(v)
	if !ok {
		r.fail(name, fmt.Sprintf("expected list, got %T", v))
		return nil, false
	}
	return list, true
}

func (r *record) object(name string, required bool) (map[string]any, bool) {
	v, ok := r.lookup(name, required)
	if !ok {
		return nil, false
	}
	m, ok := toMap(v)
	if !ok {
		r.fail(name, fmt.Sprintf("expected object, got %T", v))
		return nil, false
	}
	return m, true
}

// wireObject is a serialized entity keyed by wire name.
type wireObject map[string]any

func (o wireObject) put(aliases Aliases, canonical string, v any) {
	o[aliases.Wire(canonical)] = v
}

func putOpt[T any](o wireObject, aliases Aliases, canonical string, v Opt[T]) {
	if value, ok := v.Get(); ok {
		o.put(aliases, canonical, value)
	}
}

func putMeasure(o wireObject, aliases Aliases, canonical string, v Opt[float64]) {
	if value, ok := v.Get(); ok {
		o.put(aliases, canonical, measure(value))
	}
}
