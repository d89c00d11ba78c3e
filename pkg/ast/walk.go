package ast

import "reflect"

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// Children returns the direct child nodes of n in field order.
func Children(n Node) []Node {
	var out []Node
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil
	}
	collectChildren(v.Elem(), &out)
	return out
}

func collectChildren(v reflect.Value, out *[]Node) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			collectChildren(fv, out)
			continue
		}
		appendNodes(fv, out)
	}
}

func appendNodes(fv reflect.Value, out *[]Node) {
	switch fv.Kind() {
	case reflect.Slice:
		for j := 0; j < fv.Len(); j++ {
			appendNodes(fv.Index(j), out)
		}
	case reflect.Interface, reflect.Pointer:
		if fv.IsNil() {
			return
		}
		if n, ok := asNode(fv); ok {
			*out = append(*out, n)
		}
	}
}

func asNode(v reflect.Value) (Node, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if !v.Type().Implements(nodeType) {
		return nil, false
	}
	return v.Interface().(Node), true
}

// Inspect traverses the tree depth-first in source order, calling f for
// each node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
