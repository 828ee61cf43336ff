package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
	assert.False(t, useColor(&buf), "buffers are not terminals")

	t.Setenv("CLICOLOR_FORCE", "1")
	assert.True(t, useColor(&buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor(&buf))
}

func TestColorizeDiff(t *testing.T) {
	in := "--- a\n+++ b\n@@ -1,2 +1,2 @@\n a: 1\n-b: 2\n+b: 3\n"

	out := colorizeDiff(in)
	assert.Contains(t, out, "--- a\n+++ b\n")
	assert.Contains(t, out, ansiCyan+"@@ -1,2 +1,2 @@"+ansiReset+"\n")
	assert.Contains(t, out, " a: 1\n")
	assert.Contains(t, out, ansiRed+"-b: 2"+ansiReset+"\n")
	assert.Contains(t, out, ansiGreen+"+b: 3"+ansiReset+"\n")
}

func TestWriteDiff_ForcedColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")

	var buf bytes.Buffer
	require.NoError(t, writeDiff(&buf, "k", []byte("a: 1\n"), []byte("a: 2\n")))
	assert.Contains(t, buf.String(), ansiRed+"-a: 1"+ansiReset)
}
