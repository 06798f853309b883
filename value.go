package hocon

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindArray
	KindInclude
)

var valueKindNames = map[ValueKind]string{
	KindNull:    "Null",
	KindBoolean: "Boolean",
	KindNumber:  "Number",
	KindString:  "String",
	KindObject:  "Object",
	KindArray:   "Array",
	KindInclude: "Include",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// StringKind records whether a string literal appeared quoted or bare.
type StringKind int

const (
	StringUnquoted StringKind = iota
	StringQuoted
)

// InclusionKind is the resource kind named by an include directive.
type InclusionKind int

const (
	IncludeFile InclusionKind = iota
	IncludeURL
	IncludeClasspath
)

var inclusionKindNames = map[InclusionKind]string{
	IncludeFile:      "file",
	IncludeURL:       "url",
	IncludeClasspath: "classpath",
}

func (k InclusionKind) String() string {
	if name, ok := inclusionKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Inclusion names an external resource referenced by an include directive.
// The path is a slice of the source text; nothing is resolved or fetched.
type Inclusion struct {
	Kind InclusionKind
	Path string
}

func (inc Inclusion) String() string {
	return fmt.Sprintf("%s(%q)", inc.Kind, inc.Path)
}

type FieldKind int

const (
	FieldKeyValue FieldKind = iota
	FieldInclude
)

// Field is one entry of an object: a key/value pair or an include directive.
// Field order is significant and duplicate keys are kept as separate entries;
// merging them is a consumer concern.
type Field struct {
	Kind      FieldKind
	Key       string
	Value     Value
	Inclusion Inclusion
}

// Value is one node of a parsed configuration tree. Kind selects the variant;
// only the fields belonging to that variant are set. Values carry no source
// positions, so trees parsed from different offsets compare equal when they
// are structurally equal.
type Value struct {
	Kind      ValueKind
	Str       string
	StrKind   StringKind
	Num       float64
	Bool      bool
	Fields    []Field
	Elems     []Value
	Inclusion Inclusion
}

// Constructors for building trees by hand, mostly useful in tests.

func Null() Value { return Value{Kind: KindNull} }

func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

func Quoted(s string) Value {
	return Value{Kind: KindString, Str: s, StrKind: StringQuoted}
}

func Unquoted(s string) Value {
	return Value{Kind: KindString, Str: s, StrKind: StringUnquoted}
}

func Object(fields ...Field) Value { return Value{Kind: KindObject, Fields: fields} }

func Array(elems ...Value) Value { return Value{Kind: KindArray, Elems: elems} }

func Include(inc Inclusion) Value { return Value{Kind: KindInclude, Inclusion: inc} }

func KeyValue(key string, v Value) Field {
	return Field{Kind: FieldKeyValue, Key: key, Value: v}
}

func IncludeField(inc Inclusion) Field {
	return Field{Kind: FieldInclude, Inclusion: inc}
}

func File(path string) Inclusion { return Inclusion{Kind: IncludeFile, Path: path} }

func URL(path string) Inclusion { return Inclusion{Kind: IncludeURL, Path: path} }

func Classpath(path string) Inclusion {
	return Inclusion{Kind: IncludeClasspath, Path: path}
}

// String renders a compact single-line form of the value, close to the
// source syntax. Intended for debugging and test output, not for re-parsing.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case KindString:
		if v.StrKind == StringQuoted {
			fmt.Fprintf(sb, "%q", v.Str)
		} else {
			sb.WriteString(v.Str)
		}
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			f.writeTo(sb)
		}
		sb.WriteByte('}')
	case KindInclude:
		sb.WriteString("include ")
		sb.WriteString(v.Inclusion.String())
	default:
		sb.WriteString("<unknown>")
	}
}

func (f Field) String() string {
	var sb strings.Builder
	f.writeTo(&sb)
	return sb.String()
}

func (f Field) writeTo(sb *strings.Builder) {
	if f.Kind == FieldInclude {
		sb.WriteString("include ")
		sb.WriteString(f.Inclusion.String())
		return
	}
	sb.WriteString(f.Key)
	sb.WriteString(": ")
	f.Value.writeTo(sb)
}
