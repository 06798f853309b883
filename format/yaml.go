package format

import (
	"io"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/dhamidi/hocon"
)

type YAMLEncoder struct {
	w    io.Writer
	tree hocon.Value
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(tree hocon.Value) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// MarshalText renders the tree as YAML. Objects become yaml.MapSlice values,
// which keep field order and duplicate keys intact.
func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(yamlValue(e.tree))
}

func yamlValue(v hocon.Value) any {
	switch v.Kind {
	case hocon.KindBoolean:
		return v.Bool
	case hocon.KindNumber:
		return yamlNumber(v.Num)
	case hocon.KindString:
		return v.Str
	case hocon.KindArray:
		elems := make([]any, len(v.Elems))
		for i, elem := range v.Elems {
			elems[i] = yamlValue(elem)
		}
		return elems
	case hocon.KindObject:
		fields := make(yaml.MapSlice, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = yamlField(field)
		}
		return fields
	case hocon.KindInclude:
		return yaml.MapSlice{yamlInclusion(v.Inclusion)}
	}
	return nil
}

// yamlNumber maps whole numbers to integers so the YAML encoder does not
// render them with a ".0" suffix. Only values the float can represent
// exactly are converted.
func yamlNumber(n float64) any {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return int64(n)
	}
	return n
}

func yamlField(f hocon.Field) yaml.MapItem {
	if f.Kind == hocon.FieldInclude {
		return yamlInclusion(f.Inclusion)
	}
	return yaml.MapItem{Key: f.Key, Value: yamlValue(f.Value)}
}

func yamlInclusion(inc hocon.Inclusion) yaml.MapItem {
	return yaml.MapItem{
		Key:   "include",
		Value: yaml.MapSlice{{Key: inc.Kind.String(), Value: inc.Path}},
	}
}
