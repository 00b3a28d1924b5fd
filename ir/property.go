/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ir

import "fmt"

// Property is a named value attached to a map element.
type Property struct {
	Name  string
	Value Value
}

// Properties is an ordered property list with unique names.
type Properties []Property

// Get returns the value stored under name.
func (ps Properties) Get(name string) (Value, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether a property called name exists.
func (ps Properties) Has(name string) bool {
	_, ok := ps.Get(name)
	return ok
}

// Set replaces the value of an existing property, or appends a new one.
func (ps *Properties) Set(name string, value Value) {
	for i := range *ps {
		if (*ps)[i].Name == name {
			(*ps)[i].Value = value
			return
		}
	}
	*ps = append(*ps, Property{Name: name, Value: value})
}

// Assign replaces the value of an existing property, which must hold the
// same kind of value.
func (ps Properties) Assign(name string, value Value) error {
	for i := range ps {
		if ps[i].Name != name {
			continue
		}
		if ps[i].Value.Type() != value.Type() {
			return mismatch(value, ps[i].Value.Type())
		}
		ps[i].Value = value
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// Remove deletes the property called name, if any.
func (ps *Properties) Remove(name string) {
	for i := range *ps {
		if (*ps)[i].Name == name {
			*ps = append((*ps)[:i], (*ps)[i+1:]...)
			return
		}
	}
}
