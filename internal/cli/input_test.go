package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  Alice  \n"))

	got, err := getSimpleText(r, "Enter your name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)
	assert.Contains(t, out.String(), "Enter your name")
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("Alice")) // no trailing newline

	got, err := getSimpleText(r, "p", &out)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)
}

func TestGetSimpleText_EmptyInputEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := getSimpleText(r, "p", &out)
	require.Error(t, err)
}

func TestGetCredential_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() ([]byte, error) { return []byte("hunter2"), nil }

	var out bytes.Buffer
	got, err := getCredential("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Contains(t, out.String(), "Enter password: ")
}

func TestGetCredential_PropagatesError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() ([]byte, error) { return nil, io.ErrUnexpectedEOF }

	var out bytes.Buffer
	_, err := getCredential("p", &out)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}
