package conf

import (
	"encoding/xml"
	"errors"
	"io"
)

// Namespace is the default namespace written on every persisted document
// root.
const Namespace = "http://confkit.org/ns/config"

// Element is one node of a parsed configuration document. Text carries
// the element's character data exactly as written and is only meaningful
// for leaves; the type attribute, when present, names the concrete
// configuration type to instantiate.
type Element struct {
	Name     string
	Type     string
	Text     string
	Children []*Element
}

// HasChildren reports whether the element contains child elements.
func (e *Element) HasChildren() bool {
	return len(e.Children) > 0
}

// ParseDocument reads an XML document into an Element tree. Comments and
// processing instructions are ignored; CDATA sections merge into Text
// transparently.
func ParseDocument(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DeserializationError{Message: "malformed document", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			for _, attr := range t.Attr {
				if attr.Name.Local == "type" {
					el.Type = attr.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &DeserializationError{Message: "multiple root elements"}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, &DeserializationError{Message: "document has no root element"}
	}
	return root, nil
}
