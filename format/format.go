package format

import (
	"encoding"

	"github.com/dhamidi/hocon"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree hocon.Value) error
}
