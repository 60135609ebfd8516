package scim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

var (
	ErrDecodeDocument = errors.New("failed to decode SCIM document")
	ErrEncodeDocument = errors.New("failed to encode SCIM document")
)

// Document is the generic key-value form of a SCIM resource. Keys use the
// wire casing of the API. Values are JSON values: nil, bool, json.Number or
// any Go number, string, []any and map[string]any (or Document).
type Document map[string]any

// Payload is anything that can be sent as the body of a mutating call.
type Payload interface {
	ToDocument() Document
}

// ToDocument returns a shallow copy so that callers' maps are never mutated.
func (d Document) ToDocument() Document {
	if d == nil {
		return nil
	}

	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}

	return out
}

// ParseDocument decodes a JSON object. Numbers are kept as json.Number.
func ParseDocument(data string) (Document, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var doc Document

	err := dec.Decode(&doc)
	if err != nil {
		return nil, errs.Wrap(ErrDecodeDocument, err)
	}

	if doc == nil {
		return nil, errs.Wrapf(ErrDecodeDocument, "expected a JSON object")
	}

	return doc, nil
}

// canonical round-trips a document through JSON so that every nested value
// belongs to the JSON sum type, whatever Go types the caller used.
func canonical(doc Document) (Document, error) {
	expanded, err := expand(doc)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(expanded)
	if err != nil {
		return nil, errs.Wrap(ErrEncodeDocument, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out Document

	err = dec.Decode(&out)
	if err != nil {
		return nil, errs.Wrap(ErrEncodeDocument, err)
	}

	return out, nil
}

// expand converts v into plain JSON values. Models nested inside a document,
// by value or by pointer, alone or in slices, are replaced by their own
// documents. A struct without a document form is rejected instead of being
// marshalled with its Go field names.
func expand(v any) (any, error) {
	switch value := v.(type) {
	case nil, bool, string, json.Number, float32, float64,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, nil
	case Document:
		return expandObject(value)
	case map[string]any:
		return expandObject(value)
	case []any:
		return expandList(len(value), func(i int) any { return value[i] })
	case Payload:
		return expand(value.ToDocument())
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}

		return expand(rv.Elem().Interface())
	case reflect.Struct:
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)

		if p, ok := ptr.Interface().(Payload); ok {
			return expand(p.ToDocument())
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}

		return expandList(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		if rv.IsNil() {
			return nil, nil
		}

		obj := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = iter.Value().Interface()
		}

		return expandObject(obj)
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}

	return nil, errs.Wrapf(ErrEncodeDocument, "value of type %T has no document form", v)
}

func expandObject(obj map[string]any) (map[string]any, error) {
	if obj == nil {
		return nil, nil
	}

	out := make(map[string]any, len(obj))

	for k, v := range obj {
		value, err := expand(v)
		if err != nil {
			return nil, errs.Wrapf(err, "field %q", k)
		}

		out[k] = value
	}

	return out, nil
}

func expandList(n int, item func(int) any) ([]any, error) {
	out := make([]any, n)

	for i := range n {
		value, err := expand(item(i))
		if err != nil {
			return nil, errs.Wrapf(err, "element %d", i)
		}

		out[i] = value
	}

	return out, nil
}

// StripNulls removes null valued keys at any depth. Inside lists, elements
// that are falsy after stripping (null, false, zero, "", empty object or
// empty list) are dropped. Objects nested directly under a key are kept even
// when they end up empty.
func StripNulls(v any) any {
	switch value := v.(type) {
	case Document:
		return stripObject(value)
	case map[string]any:
		return stripObject(value)
	case []any:
		out := make([]any, 0, len(value))

		for _, item := range value {
			item = StripNulls(item)
			if !isFalsy(item) {
				out = append(out, item)
			}
		}

		return out
	default:
		return v
	}
}

func stripObject(obj map[string]any) Document {
	out := make(Document, len(obj))

	for k, v := range obj {
		if v == nil {
			continue
		}

		out[k] = StripNulls(v)
	}

	return out
}

func isFalsy(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case string:
		return value == ""
	case json.Number:
		f, err := value.Float64()
		return err == nil && f == 0
	case float64:
		return value == 0
	case int:
		return value == 0
	case Document:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	case []any:
		return len(value) == 0
	default:
		return false
	}
}

// decoder reads optional fields out of a document. Every mismatch is
// recorded against its dotted path and decoding carries on, so a single
// call reports all offending fields.
type decoder struct {
	doc    map[string]any
	path   string
	errors *multierror.Error
}

func newDecoder(doc Document) *decoder {
	return &decoder{doc: doc}
}

func (d *decoder) fieldPath(key string) string {
	if d.path == "" {
		return key
	}

	return d.path + "." + key
}

func (d *decoder) fail(key string, expected string, got any) {
	d.errors = multierror.Append(d.errors,
		fmt.Errorf("field %q: expected %s, got %T", d.fieldPath(key), expected, got))
}

func (d *decoder) err() error {
	if d.errors == nil {
		return nil
	}

	return errs.Wrap(ErrDecodeDocument, d.errors.ErrorOrNil())
}

func (d *decoder) child(key string, doc map[string]any) *decoder {
	return &decoder{doc: doc, path: d.fieldPath(key), errors: d.errors}
}

// adopt pulls the errors recorded by a child decoder back into d.
func (d *decoder) adopt(c *decoder) {
	d.errors = c.errors
}

func (d *decoder) str(key string) *string {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		d.fail(key, "string", v)
		return nil
	}

	return &s
}

func (d *decoder) boolean(key string) *bool {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil
	}

	b, ok := v.(bool)
	if !ok {
		d.fail(key, "bool", v)
		return nil
	}

	return &b
}

func (d *decoder) integer(key string) *int {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil
	}

	i, ok := toInt(v)
	if !ok {
		d.fail(key, "integer", v)
		return nil
	}

	return &i
}

func (d *decoder) strings(key string) []string {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil
	}

	items, ok := toList(v)
	if !ok {
		d.fail(key, "list of strings", v)
		return nil
	}

	out := make([]string, 0, len(items))

	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", key, i), "string", item)
			return nil
		}

		out = append(out, s)
	}

	return out
}

func (d *decoder) object(key string) (*decoder, bool) {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil, false
	}

	obj, ok := toObject(v)
	if !ok {
		d.fail(key, "object", v)
		return nil, false
	}

	return d.child(key, obj), true
}

// nested decodes an optional object field with fn.
func nested[T any](d *decoder, key string, fn func(*decoder) T) *T {
	c, ok := d.object(key)
	if !ok {
		return nil
	}

	value := fn(c)
	d.adopt(c)

	return &value
}

// nestedList decodes an optional list of objects. A single malformed element
// discards the whole list.
func nestedList[T any](d *decoder, key string, fn func(*decoder) T) []T {
	v, ok := d.doc[key]
	if !ok || v == nil {
		return nil
	}

	items, ok := toList(v)
	if !ok {
		d.fail(key, "list of objects", v)
		return nil
	}

	before := errorCount(d.errors)
	out := make([]T, 0, len(items))

	for i, item := range items {
		elemKey := fmt.Sprintf("%s[%d]", key, i)

		obj, ok := toObject(item)
		if !ok {
			d.fail(elemKey, "object", item)
			continue
		}

		c := d.child(elemKey, obj)
		out = append(out, fn(c))
		d.adopt(c)
	}

	if errorCount(d.errors) > before {
		return nil
	}

	return out
}

func errorCount(e *multierror.Error) int {
	if e == nil {
		return 0
	}

	return len(e.Errors)
}

func toObject(v any) (map[string]any, bool) {
	switch value := v.(type) {
	case Document:
		return value, true
	case map[string]any:
		return value, true
	default:
		return nil, false
	}
}

func toList(v any) ([]any, bool) {
	switch value := v.(type) {
	case []any:
		return value, true
	case []string:
		out := make([]any, len(value))
		for i, s := range value {
			out[i] = s
		}

		return out, true
	case []Document:
		out := make([]any, len(value))
		for i, doc := range value {
			out[i] = doc
		}

		return out, true
	case []map[string]any:
		out := make([]any, len(value))
		for i, doc := range value {
			out[i] = doc
		}

		return out, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch value := v.(type) {
	case json.Number:
		i, err := value.Int64()
		if err != nil {
			return 0, false
		}

		return int(i), true
	case int:
		return value, true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}

		return int(value), true
	default:
		return 0, false
	}
}

// The set helpers write a field only when it is present.

func setValue[T any](doc Document, key string, v *T) {
	if v != nil {
		doc[key] = *v
	}
}

func setStrings(doc Document, key string, v []string) {
	if v == nil {
		return
	}

	out := make([]any, len(v))
	for i, s := range v {
		out[i] = s
	}

	doc[key] = out
}

func setDocument(doc Document, key string, v Document) {
	if v != nil {
		doc[key] = v
	}
}

func setList[T any](doc Document, key string, items []T, fn func(*T) Document) {
	if items == nil {
		return
	}

	out := make([]any, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}

	doc[key] = out
}
