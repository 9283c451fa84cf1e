package main

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightread/score"
)

func testScore(t *testing.T) *score.Score {
	t.Helper()
	sc, err := score.NewGenerator(rand.NewPCG(4, 2)).Generate(score.DefaultSettings())
	require.NoError(t, err)
	return sc
}

func TestExportFile(t *testing.T) {
	sc := testScore(t)
	dir := t.TempDir()

	abc := filepath.Join(dir, "phrase.abc")
	require.NoError(t, exportFile(abc, sc, "abc", 80))
	data, err := os.ReadFile(abc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("X:1\n")))

	mid := filepath.Join(dir, "phrase.mid")
	require.NoError(t, exportFile(mid, sc, "smf", 80))
	data, err = os.ReadFile(mid)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("MThd")))
}

func TestExportFileErrors(t *testing.T) {
	sc := testScore(t)
	dir := t.TempDir()

	assert.ErrorContains(t, exportFile(filepath.Join(dir, "x.txt"), sc, "pdf", 80), `unknown format "pdf"`)
	assert.Error(t, exportFile(filepath.Join(dir, "missing", "x.abc"), sc, "abc", 80))
}

func TestWriteScoreToStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeScore(&buf, testScore(t), "abc", 80))
	assert.Contains(t, buf.String(), "%%staves {1 2}\n")
}
