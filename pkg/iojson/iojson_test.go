package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decision struct {
	ID       string `json:"id"`
	Decision string `json:"decision"`
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[[]decision]{Stdin: strings.NewReader(`[{"id":"rec1","decision":"approved"}]`)}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []decision{{ID: "rec1", Decision: "approved"}}, got)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"rec2","decision":"rejected"}]`), 0o644))

	fr := &FileReader[[]decision]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rec2", got[0].ID)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode[decision](strings.NewReader(`{"id":"x","verdict":"yes"}`))
	require.Error(t, err)
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []decision{{ID: "a"}, {ID: "b"}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":"a","decision":""}`, lines[0])
}

func TestWriteWith_MarshalError(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)}))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}
