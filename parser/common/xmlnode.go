/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common

import (
	"encoding/xml"
	"strconv"
)

// XMLNode is a generic XML element. Children keep document order, which
// matters for interleaved <layer>, <objectgroup> and <group> elements.
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []*XMLNode `xml:",any"`
	Text    string     `xml:",chardata"`
}

// NewXMLNode creates an element called name.
func NewXMLNode(name string) *XMLNode {
	return &XMLNode{XMLName: xml.Name{Local: name}}
}

// Name returns the local element name.
func (n *XMLNode) Name() string {
	return n.XMLName.Local
}

// Attr returns an attribute value.
func (n *XMLNode) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns an attribute value or fallback when absent.
func (n *XMLNode) AttrOr(name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}

// IntAttr returns an integer attribute. Missing or malformed values report false.
func (n *XMLNode) IntAttr(name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	return i, err == nil
}

// FloatAttr returns a numeric attribute.
func (n *XMLNode) FloatAttr(name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// Child returns the first child element called name.
func (n *XMLNode) Child(name string) *XMLNode {
	for _, c := range n.Nodes {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Children returns every child element called name.
func (n *XMLNode) Children(name string) []*XMLNode {
	var out []*XMLNode
	for _, c := range n.Nodes {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// SetAttr appends an attribute.
func (n *XMLNode) SetAttr(name, value string) *XMLNode {
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

// SetIntAttr appends an integer attribute.
func (n *XMLNode) SetIntAttr(name string, value int) *XMLNode {
	return n.SetAttr(name, strconv.Itoa(value))
}

// SetFloatAttr appends a numeric attribute in shortest form.
func (n *XMLNode) SetFloatAttr(name string, value float64) *XMLNode {
	return n.SetAttr(name, strconv.FormatFloat(value, 'g', -1, 64))
}

// Append adds a child element and returns it.
func (n *XMLNode) Append(child *XMLNode) *XMLNode {
	n.Nodes = append(n.Nodes, child)
	return child
}

// AppendNew adds a new child element called name and returns it.
func (n *XMLNode) AppendNew(name string) *XMLNode {
	return n.Append(NewXMLNode(name))
}

// MarshalXML writes the element token by token. Struct marshalling escapes
// newlines in character data, which would flatten folded tile rows.
func (n *XMLNode) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: n.XMLName, Attr: n.Attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Nodes {
		if err := e.EncodeElement(c, xml.StartElement{Name: c.XMLName}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// DecodeXML parses data into a node tree and returns the root element.
func DecodeXML(data []byte) (*XMLNode, error) {
	var root XMLNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}
