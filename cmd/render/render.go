/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/mapio/ir"
)

// Summary holds computed display values for a whole map.
type Summary struct {
	Path         string          `json:"path"`
	Columns      int             `json:"columns"`
	Rows         int             `json:"rows"`
	TileWidth    int             `json:"tileWidth"`
	TileHeight   int             `json:"tileHeight"`
	NextLayerID  int             `json:"nextLayerId"`
	NextObjectID int             `json:"nextObjectId"`
	Tilesets     []TilesetRow    `json:"tilesets"`
	Layers       []LayerRow      `json:"layers"`
	Properties   []PropertyRow   `json:"properties,omitempty"`
	Components   []ComponentRow  `json:"components,omitempty"`
	Definitions  []DefinitionRow `json:"componentDefinitions,omitempty"`
}

// TilesetRow describes one tileset.
type TilesetRow struct {
	Name      string `json:"name"`
	FirstGID  int    `json:"firstGid"`
	LastGID   int    `json:"lastGid"`
	TileCount int    `json:"tileCount"`
	Image     string `json:"image"`
	Animated  int    `json:"animatedTiles"`
}

// LayerRow describes one layer. Depth is the nesting level in the tree.
type LayerRow struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Depth   int     `json:"depth"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Detail  string  `json:"detail"`
}

// PropertyRow describes a property and the element that owns it.
type PropertyRow struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	IsColor bool   `json:"-"`
}

// ComponentRow describes a component instance.
type ComponentRow struct {
	Owner  string `json:"owner"`
	Type   string `json:"type"`
	Values string `json:"values"`
}

// DefinitionRow describes a component definition.
type DefinitionRow struct {
	Name       string `json:"name"`
	Attributes string `json:"attributes"`
}

// Summarize computes the display values of m.
func Summarize(m *ir.Map) *Summary {
	s := &Summary{
		Path:         m.Path,
		Columns:      m.ColumnCount,
		Rows:         m.RowCount,
		TileWidth:    m.TileWidth,
		TileHeight:   m.TileHeight,
		NextLayerID:  m.NextLayerID,
		NextObjectID: m.NextObjectID,
	}

	s.addProperties("map", m.Properties)
	s.addComponents("map", m.Components)

	for _, def := range m.ComponentDefs {
		attrs := make([]string, 0, len(def.Attributes))
		for _, a := range def.Attributes {
			attrs = append(attrs, fmt.Sprintf("%s:%s=%s", a.Name, a.Value.Type(), ir.FormatValue(a.Value)))
		}
		s.Definitions = append(s.Definitions, DefinitionRow{Name: def.Name, Attributes: strings.Join(attrs, ", ")})
	}

	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		row := TilesetRow{
			Name:      ts.Name,
			FirstGID:  ts.FirstTile,
			LastGID:   ts.LastTile(),
			TileCount: ts.TileCount,
			Image:     ir.RelativizePath(ts.ImagePath, m.Dir()),
		}
		for j := range ts.Tiles {
			if len(ts.Tiles[j].Frames) > 0 {
				row.Animated++
			}
		}
		s.Tilesets = append(s.Tilesets, row)
		owner := "tileset " + ts.Name
		s.addProperties(owner, ts.Properties)
		s.addComponents(owner, ts.Components)
	}

	depth := make(map[*ir.Layer]int)
	m.Walk(func(l, parent *ir.Layer) bool {
		if parent != nil {
			depth[l] = depth[parent] + 1
		}
		s.Layers = append(s.Layers, LayerRow{
			ID:      l.ID,
			Name:    l.Name,
			Kind:    toTitleCase(l.Kind().String()),
			Depth:   depth[l],
			Visible: l.Visible,
			Opacity: l.Opacity,
			Detail:  layerDetail(l),
		})
		owner := fmt.Sprintf("layer %d", l.ID)
		s.addProperties(owner, l.Properties)
		s.addComponents(owner, l.Components)
		if ol, ok := l.Content.(*ir.ObjectLayer); ok {
			for i := range ol.Objects {
				obj := &ol.Objects[i]
				objOwner := fmt.Sprintf("object %d", obj.ID)
				s.addProperties(objOwner, obj.Properties)
				s.addComponents(objOwner, obj.Components)
			}
		}
		return true
	})

	return s
}

func layerDetail(l *ir.Layer) string {
	switch content := l.Content.(type) {
	case *ir.TileLayer:
		used := 0
		for _, row := range content.Tiles {
			for _, gid := range row {
				if gid != 0 {
					used++
				}
			}
		}
		return fmt.Sprintf("%d/%d tiles", used, content.Tiles.Rows()*content.Tiles.Cols())
	case *ir.ObjectLayer:
		return plural(len(content.Objects), "object")
	case *ir.GroupLayer:
		return plural(len(content.Layers), "layer")
	default:
		return "-"
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func (s *Summary) addProperties(owner string, props ir.Properties) {
	for _, p := range props {
		row := PropertyRow{
			Owner: owner,
			Name:  p.Name,
			Type:  p.Value.Type().String(),
			Value: ir.FormatValue(p.Value),
		}
		if c, ok := p.Value.(ir.Color); ok {
			row.Value = c.RGBA()
			row.IsColor = true
		}
		s.Properties = append(s.Properties, row)
	}
}

func (s *Summary) addComponents(owner string, components []*ir.Component) {
	for _, c := range components {
		values := make([]string, 0, len(c.Values))
		for _, a := range c.Values {
			values = append(values, a.Name+"="+ir.FormatValue(a.Value))
		}
		s.Components = append(s.Components, ComponentRow{
			Owner:  owner,
			Type:   c.Type,
			Values: strings.Join(values, ", "),
		})
	}
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

// Table renders the summary as aligned plain text.
func Table(w io.Writer, s *Summary) error {
	fmt.Fprintf(w, "%s\n", s.Path)
	fmt.Fprintf(w, "  %dx%d tiles of %dx%d px, next layer %d, next object %d\n",
		s.Columns, s.Rows, s.TileWidth, s.TileHeight, s.NextLayerID, s.NextObjectID)

	if len(s.Tilesets) > 0 {
		fmt.Fprintln(w, "\nTilesets")
		nameW := 4
		for _, t := range s.Tilesets {
			nameW = max(nameW, len(t.Name))
		}
		for _, t := range s.Tilesets {
			fmt.Fprintf(w, "  %-*s  %d-%d  %s\n", nameW, t.Name, t.FirstGID, t.LastGID, t.Image)
		}
	}

	if len(s.Layers) > 0 {
		fmt.Fprintln(w, "\nLayers")
		for _, l := range s.Layers {
			hidden := ""
			if !l.Visible {
				hidden = " (hidden)"
			}
			indent := strings.Repeat("  ", l.Depth)
			fmt.Fprintf(w, "  %s#%d %s [%s] %s%s\n", indent, l.ID, l.Name, l.Kind, l.Detail, hidden)
		}
	}

	if len(s.Properties) > 0 {
		fmt.Fprintln(w, "\nProperties")
		ownerW, nameW, typeW := 5, 4, 4
		for _, p := range s.Properties {
			ownerW = max(ownerW, len(p.Owner))
			nameW = max(nameW, len(p.Name))
			typeW = max(typeW, len(p.Type))
		}
		for _, p := range s.Properties {
			swatch := ""
			if p.IsColor {
				swatch = ColorSwatch(p.Value)
			}
			fmt.Fprintf(w, "  %-*s  %-*s  %-*s  %s%s\n", ownerW, p.Owner, nameW, p.Name, typeW, p.Type, swatch, p.Value)
		}
	}

	if len(s.Definitions) > 0 {
		fmt.Fprintln(w, "\nComponent definitions")
		for _, d := range s.Definitions {
			fmt.Fprintf(w, "  %s: %s\n", d.Name, d.Attributes)
		}
	}

	if len(s.Components) > 0 {
		fmt.Fprintln(w, "\nComponents")
		for _, c := range s.Components {
			fmt.Fprintf(w, "  %s  %s  %s\n", c.Owner, c.Type, c.Values)
		}
	}
	return nil
}

// Markdown renders the summary as markdown sections with tables.
func Markdown(w io.Writer, s *Summary) error {
	fmt.Fprintf(w, "# %s\n\n", s.Path)
	fmt.Fprintf(w, "%d×%d tiles of %d×%d px.\n", s.Columns, s.Rows, s.TileWidth, s.TileHeight)

	if len(s.Tilesets) > 0 {
		fmt.Fprintln(w, "\n## Tilesets")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Name | Global ids | Image |")
		fmt.Fprintln(w, "|------|------------|-------|")
		for _, t := range s.Tilesets {
			fmt.Fprintf(w, "| %s | %d-%d | `%s` |\n", t.Name, t.FirstGID, t.LastGID, t.Image)
		}
	}

	if len(s.Layers) > 0 {
		fmt.Fprintln(w, "\n## Layers")
		fmt.Fprintln(w)
		for _, l := range s.Layers {
			fmt.Fprintf(w, "%s- <a id=\"%s\"></a>**%s** (%s, %s)\n",
				strings.Repeat("  ", l.Depth), slugify(fmt.Sprintf("layer %d %s", l.ID, l.Name)), l.Name, l.Kind, l.Detail)
		}
	}

	if len(s.Properties) > 0 {
		fmt.Fprintln(w, "\n## Properties")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Owner | Name | Type | Value |")
		fmt.Fprintln(w, "|-------|------|------|-------|")
		for _, p := range s.Properties {
			fmt.Fprintf(w, "| %s | %s | %s | `%s` |\n", p.Owner, p.Name, p.Type, p.Value)
		}
	}

	if len(s.Components) > 0 {
		fmt.Fprintln(w, "\n## Components")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Owner | Type | Values |")
		fmt.Fprintln(w, "|-------|------|--------|")
		for _, c := range s.Components {
			fmt.Fprintf(w, "| %s | %s | %s |\n", c.Owner, c.Type, c.Values)
		}
	}
	return nil
}

// JSON renders the summary as indented JSON.
func JSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// slugify converts a name to a URL-safe anchor ID.
// e.g., "Layer 3 Decor" -> "layer-3-decor"
func slugify(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' || r == '.' {
			result.WriteRune('-')
		}
	}
	// Remove consecutive dashes
	s := result.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
