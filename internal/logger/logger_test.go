/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	Warn("layer %d is odd", 3)
	Debug("hidden")
	SetVerbose(true)
	Debug("shown")

	assert.Equal(t, "warning: layer 3 is odd\ndebug: shown\n", buf.String())
}
