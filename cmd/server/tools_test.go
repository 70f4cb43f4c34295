package main

import (
	"bytes"
	"testing"

	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSets(t *testing.T) {
	tool, err := catalog.Default().Lookup("rebar-weight")
	require.NoError(t, err)

	raw, err := parseSets(tool, []string{"dia=16", " length =  24"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dia": "16", "length": "  24"}, raw)

	_, err = parseSets(tool, []string{"dia"})
	assert.Error(t, err)

	_, err = parseSets(tool, []string{"weight=3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dia, length")
}

func TestPrintTools(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTools(&buf, catalog.Default().Search("emi", "All")))
	assert.Contains(t, buf.String(), "emi-calculator")
	assert.Contains(t, buf.String(), "Project Management")

	buf.Reset()
	require.NoError(t, printTools(&buf, nil))
	assert.Equal(t, "No tools match.\n", buf.String())
}

func TestCalcCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"calc", "rebar-weight", "--set", "length=24"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		calcSets = nil
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Rebar Weight Calculator")
	assert.Contains(t, out.String(), "21.31 kg")
}
