package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/dhamidi/hocon"
)

type JSONEncoder struct {
	w    io.Writer
	tree hocon.Value
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree hocon.Value) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// MarshalText renders the tree as indented JSON ending in a newline. Objects
// keep their field order and duplicate keys, which encoding/json maps cannot
// represent, so the object and array syntax is assembled here while scalars
// and indentation go through encoding/json.
func (e *JSONEncoder) MarshalText() ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSON(&compact, e.tree); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v hocon.Value) error {
	switch v.Kind {
	case hocon.KindNull:
		buf.WriteString("null")
	case hocon.KindBoolean:
		return writeScalar(buf, v.Bool)
	case hocon.KindNumber:
		return writeScalar(buf, v.Num)
	case hocon.KindString:
		return writeScalar(buf, v.Str)
	case hocon.KindArray:
		buf.WriteByte('[')
		for i, elem := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case hocon.KindObject:
		buf.WriteByte('{')
		for i, field := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeField(buf, field); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case hocon.KindInclude:
		buf.WriteByte('{')
		if err := writeIncludeMember(buf, v.Inclusion); err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeField(buf *bytes.Buffer, f hocon.Field) error {
	if f.Kind == hocon.FieldInclude {
		return writeIncludeMember(buf, f.Inclusion)
	}
	if err := writeScalar(buf, f.Key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSON(buf, f.Value)
}

// An include directive has no JSON equivalent. It becomes
// "include": {"file": "path"} so the directive survives the conversion.
func writeIncludeMember(buf *bytes.Buffer, inc hocon.Inclusion) error {
	buf.WriteString(`"include":{`)
	if err := writeScalar(buf, inc.Kind.String()); err != nil {
		return err
	}
	buf.WriteByte(':')
	if err := writeScalar(buf, inc.Path); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
