package cmd

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := strings.TrimSpace(out.String())
	if output == "pbtscan version: unknown" {
		return
	}

	assert.True(t, strings.HasPrefix(output, "pbtscan "), "output %q", output)
	assert.Contains(t, output, "("+runtime.Version()+")")
}
