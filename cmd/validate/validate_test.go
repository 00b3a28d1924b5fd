/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/mapio/parser"
	"bennypowers.dev/mapio/testutil"
)

func TestCheck_Fixtures(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "maps/basic", "/maps")
	for _, file := range []string{"map.tmx", "map.json", "map.yaml"} {
		t.Run(file, func(t *testing.T) {
			r := Check(mfs, "/maps/"+file)
			require.NoError(t, r.Err)
			assert.Empty(t, r.Problems)
			assert.True(t, r.OK())
		})
	}
}

func TestCheck_ParseError(t *testing.T) {
	mfs := testutil.NewMapFS(map[string]string{
		"/maps/broken.tmx": `<?xml version="1.0"?>
<map version="1.9" orientation="orthogonal" width="1" height="1" tilewidth="16" nextlayerid="2" nextobjectid="1"/>`,
	})

	r := Check(mfs, "/maps/broken.tmx")
	assert.False(t, r.OK())
	assert.Equal(t, parser.MapMissingTileHeight, parser.CodeOf(r.Err))

	var buf bytes.Buffer
	Report(&buf, r)
	assert.Contains(t, buf.String(), "/maps/broken.tmx: MapMissingTileHeight (")
}

func TestCheck_Problems(t *testing.T) {
	mfs := testutil.NewMapFS(map[string]string{
		"/maps/dup.json": `{
  "type": "map", "orientation": "orthogonal", "infinite": false,
  "width": 1, "height": 1, "tilewidth": 16, "tileheight": 16,
  "nextlayerid": 3, "nextobjectid": 1,
  "tilesets": [],
  "layers": [
    {"id": 1, "name": "A", "type": "tilelayer", "width": 1, "height": 1, "data": [0]},
    {"id": 1, "name": "B", "type": "tilelayer", "width": 1, "height": 1, "data": [7]}
  ]
}`,
	})

	r := Check(mfs, "/maps/dup.json")
	require.NoError(t, r.Err)
	require.Len(t, r.Problems, 2)

	var buf bytes.Buffer
	Report(&buf, r)
	assert.Contains(t, buf.String(), "layers[1]")
	assert.Contains(t, buf.String(), "layers[1].data[0][0]")
}

func TestReport_OK(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, Result{Path: "/maps/fine.yaml"})
	assert.Empty(t, buf.String())
}
