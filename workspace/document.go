package workspace

import "github.com/dhamidi/hocon"

// Document pairs the text of a configuration file with its parsed tree. Both
// are fixed at construction; replacing a document means building a new one.
// The tree's strings are slices of the text, so a document keeps exactly one
// copy of its content.
type Document struct {
	text string
	tree hocon.Value
}

// NewDocument parses text and returns a document holding both the text and
// the tree. A parse failure returns the error and no document.
func NewDocument(text string) (*Document, error) {
	tree, err := hocon.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Document{text: text, tree: tree}, nil
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Tree() hocon.Value {
	return d.tree
}
