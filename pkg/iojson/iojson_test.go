package iojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"result": "confirmed"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "confirmed", got["result"])
	assert.Empty(t, errOut.String())
}

func TestWriteWith_KeepsMarkdown(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteWith(&out, io.Discard, map[string]string{"message": "<b> & co"}))
	assert.Contains(t, out.String(), "<b> & co")
	assert.True(t, strings.HasSuffix(out.String(), "}\n"))
}

func TestWriteWith_EncodeFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, func() {}))

	assert.Empty(t, out.String())

	var got Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &got))
	assert.Contains(t, got.Error, "encode output")
}

func TestWriteError(t *testing.T) {
	var out bytes.Buffer
	err := WriteError(&out, errors.New(`bad "input"`), map[string]string{"events[0].kind": "unknown kind"})
	require.NoError(t, err)

	var got Error
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, `bad "input"`, got.Error)
	assert.Equal(t, "unknown kind", got.Fields["events[0].kind"])
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialog: hold\n"), 0o644))

	fr := &FileReader{}
	fr.SetFile(path)

	data, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "dialog: hold\n", string(data))
	assert.Equal(t, path, fr.Source())
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader{stdin: strings.NewReader("piped"), isTerminal: func() bool { return false }}

	data, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "piped", string(data))
	assert.Equal(t, "stdin", fr.Source())
}

func TestFileReader_TerminalStdin(t *testing.T) {
	fr := &FileReader{stdin: strings.NewReader(""), isTerminal: func() bool { return true }}

	_, err := fr.Read()
	assert.ErrorContains(t, err, "stdin is a terminal")
}
