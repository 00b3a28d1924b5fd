/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "fmt"

// Attribute is a named, typed slot of a component.
type Attribute struct {
	Name  string
	Value Value
}

// ComponentDef is a reusable bundle of typed attributes. The value stored
// for each attribute is the default used to pre-fill new components.
type ComponentDef struct {
	Name       string
	Attributes []Attribute
}

// NewComponentDef returns a definition with no attributes.
func NewComponentDef(name string) *ComponentDef {
	return &ComponentDef{Name: name}
}

func findAttribute(attrs []Attribute, name string) int {
	for i := range attrs {
		if attrs[i].Name == name {
			return i
		}
	}
	return -1
}

// DefineAttribute adds an attribute, or resets an existing one, to the zero
// value of t.
func (d *ComponentDef) DefineAttribute(name string, t PropertyType) {
	if i := findAttribute(d.Attributes, name); i >= 0 {
		d.Attributes[i].Value = ZeroValue(t)
		return
	}
	d.Attributes = append(d.Attributes, Attribute{Name: name, Value: ZeroValue(t)})
}

// SetDefault changes the default of an attribute. The value must match the
// attribute's type.
func (d *ComponentDef) SetDefault(name string, v Value) error {
	i := findAttribute(d.Attributes, name)
	if i < 0 {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, d.Name, name)
	}
	if v == nil || d.Attributes[i].Value.Type() != v.Type() {
		return fmt.Errorf("%s.%s: %w", d.Name, name, mismatch(v, d.Attributes[i].Value.Type()))
	}
	d.Attributes[i].Value = v
	return nil
}

// RemoveAttribute deletes an attribute, if present.
func (d *ComponentDef) RemoveAttribute(name string) {
	if i := findAttribute(d.Attributes, name); i >= 0 {
		d.Attributes = append(d.Attributes[:i], d.Attributes[i+1:]...)
	}
}

// Attribute looks up an attribute by name.
func (d *ComponentDef) Attribute(name string) (Attribute, bool) {
	if i := findAttribute(d.Attributes, name); i >= 0 {
		return d.Attributes[i], true
	}
	return Attribute{}, false
}

// HasDefaultValue reports whether the attribute's default is still the zero
// value of its type.
func (d *ComponentDef) HasDefaultValue(name string) (bool, error) {
	a, ok := d.Attribute(name)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, d.Name, name)
	}
	return IsZero(a.Value), nil
}

// Component is an instance of a ComponentDef attached to a map element.
type Component struct {
	Type   string
	Values []Attribute

	assigned map[string]bool
}

// NewComponent copies the current attributes of def into a new instance.
func NewComponent(def *ComponentDef) *Component {
	values := make([]Attribute, len(def.Attributes))
	copy(values, def.Attributes)
	return &Component{Type: def.Name, Values: values}
}

// Get returns the value of an attribute.
func (c *Component) Get(name string) (Value, error) {
	if i := findAttribute(c.Values, name); i >= 0 {
		return c.Values[i].Value, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, c.Type, name)
}

// Set assigns an attribute. The value must match the attribute's type.
func (c *Component) Set(name string, v Value) error {
	i := findAttribute(c.Values, name)
	if i < 0 {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, c.Type, name)
	}
	if v == nil || c.Values[i].Value.Type() != v.Type() {
		return fmt.Errorf("%s.%s: %w", c.Type, name, mismatch(v, c.Values[i].Value.Type()))
	}
	c.Values[i].Value = v
	if c.assigned == nil {
		c.assigned = make(map[string]bool)
	}
	c.assigned[name] = true
	return nil
}

// HasDefaultValue reports whether an attribute still holds the pristine zero
// value of its type and has never been assigned on this instance. The
// definition's customized default is not consulted.
func (c *Component) HasDefaultValue(name string) (bool, error) {
	v, err := c.Get(name)
	if err != nil {
		return false, err
	}
	return !c.assigned[name] && IsZero(v), nil
}

// FindComponent returns the component of the given type in a list.
func FindComponent(components []*Component, typ string) (*Component, bool) {
	for _, c := range components {
		if c.Type == typ {
			return c, true
		}
	}
	return nil, false
}
