package ast

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one key/value pair of an encoded node.
type Field struct {
	Key   string
	Value any
}

// Object is an encoded node: an ordered list of fields starting with
// "type". It marshals to JSON and YAML with its keys in field order.
type Object []Field

// Get returns the value stored under key, or nil.
func (o Object) Get(key string) any {
	for _, f := range o {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Object) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o {
		var k, v yaml.Node
		k.SetString(f.Key)
		if err := v.Encode(f.Value); err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &k, &v)
	}
	return m, nil
}

// EncodeOptions controls ToObject.
type EncodeOptions struct {
	OmitSpans bool // drop start/end/loc, useful for structural comparison
}

// ToObject converts a node into its ESTree-shaped Object.
func ToObject(n Node, opts EncodeOptions) Object {
	if n == nil {
		return nil
	}
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	obj := Object{{Key: "type", Value: n.Type()}}
	return encodeStruct(v.Elem(), obj, opts)
}

func encodeStruct(v reflect.Value, obj Object, opts EncodeOptions) Object {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			obj = encodeStruct(fv, obj, opts)
			continue
		}
		name, omitEmpty := jsonName(f)
		if name == "-" {
			continue
		}
		if opts.OmitSpans && (name == "start" || name == "end" || name == "loc") {
			continue
		}
		if omitEmpty && isEmpty(fv) {
			continue
		}
		obj = append(obj, Field{Key: name, Value: encodeValue(fv, opts)})
	}
	return obj
}

func encodeValue(v reflect.Value, opts EncodeOptions) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if n, ok := asNode(v); ok {
			return ToObject(n, opts)
		}
		if v.Kind() == reflect.Interface {
			return encodeValue(v.Elem(), opts)
		}
		return v.Interface()
	case reflect.Slice:
		if v.IsNil() {
			return []any{}
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = encodeValue(v.Index(i), opts)
		}
		return out
	default:
		return v.Interface()
	}
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	name, rest, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(rest, "omitempty")
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return true
		}
		if v.Kind() == reflect.Interface {
			e := v.Elem()
			return e.Kind() == reflect.Pointer && e.IsNil()
		}
		return false
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	}
	return false
}
