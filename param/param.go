package param

import (
	"fmt"
	"strconv"
)

// Kind tags the concrete type held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a loosely typed scalar. Effects check Kind before reading it.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func None() Value { return Value{kind: KindNone} }
func Int(v int64) Value { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNone() bool { return v.kind == KindNone }

// AsInt returns the integer and true only when the value is tagged KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return "<none>"
	}
}

// Parameter is a named value attached to an effect request.
type Parameter struct {
	Name  string
	Value Value
}

func New(name string, value Value) Parameter {
	return Parameter{Name: name, Value: value}
}

// Of returns a pointer suitable for an optional parameter slot.
func Of(name string, value Value) *Parameter {
	p := New(name, value)
	return &p
}

func (p Parameter) String() string {
	return p.Name + ": " + p.Value.String()
}
