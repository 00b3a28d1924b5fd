/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package common holds helpers shared by the map parsers and emitters.
package common

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Root returns the top-level node of a decoded document.
func Root(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// Lookup returns the value node stored under key in a mapping node.
func Lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Has reports whether key is present in a mapping node.
func Has(node *yaml.Node, key string) bool {
	return Lookup(node, key) != nil
}

func scalar(node *yaml.Node, key string) (*yaml.Node, bool) {
	v := Lookup(node, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return nil, false
	}
	return v, true
}

// String returns a scalar value as text.
func String(node *yaml.Node, key string) (string, bool) {
	v, ok := scalar(node, key)
	if !ok {
		return "", false
	}
	return v.Value, true
}

// Int returns an integer scalar. Non-integers report false.
func Int(node *yaml.Node, key string) (int, bool) {
	v, ok := scalar(node, key)
	if !ok {
		return 0, false
	}
	return ScalarInt(v)
}

// Float returns a numeric scalar.
func Float(node *yaml.Node, key string) (float64, bool) {
	v, ok := scalar(node, key)
	if !ok {
		return 0, false
	}
	return ScalarFloat(v)
}

// Bool returns a boolean scalar.
func Bool(node *yaml.Node, key string) (bool, bool) {
	v, ok := scalar(node, key)
	if !ok {
		return false, false
	}
	return ScalarBool(v)
}

// Seq returns the items of a sequence node. Missing keys yield nil.
func Seq(node *yaml.Node, key string) []*yaml.Node {
	v := Lookup(node, key)
	if v == nil || v.Kind != yaml.SequenceNode {
		return nil
	}
	return v.Content
}

// ScalarInt decodes an integer scalar node.
func ScalarInt(v *yaml.Node) (int, bool) {
	if v == nil || v.Kind != yaml.ScalarNode {
		return 0, false
	}
	i, err := strconv.Atoi(v.Value)
	return i, err == nil
}

// ScalarFloat decodes a numeric scalar node.
func ScalarFloat(v *yaml.Node) (float64, bool) {
	if v == nil || v.Kind != yaml.ScalarNode {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	return f, err == nil
}

// ScalarBool decodes a boolean scalar node.
func ScalarBool(v *yaml.Node) (bool, bool) {
	if v == nil || v.Kind != yaml.ScalarNode {
		return false, false
	}
	var b bool
	if err := v.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}
