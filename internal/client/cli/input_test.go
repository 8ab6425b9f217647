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

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	s, err := GetSimpleText(reader("  alice \n"), "Login", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", s)
	assert.Equal(t, "Login: ", out.String())

	s, err = GetSimpleText(reader("last"), "Login", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "last", s)

	_, err = GetSimpleText(reader(""), "Login", io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(reader(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = GetPassword(reader(""), "Password", io.Discard)
	assert.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	oldTerm := isTerminal
	t.Cleanup(func() { isTerminal = oldTerm })
	isTerminal = func(int) bool { return false }

	pw, err := GetPassword(reader("from-pipe\n"), "Password", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "from-pipe", pw)
}

func TestGetInt(t *testing.T) {
	n, err := GetInt(reader("\n"), "Company", 7, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = GetInt(reader("42\n"), "Company", 7, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = GetInt(reader("x\n"), "Company", 7, io.Discard)
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(reader(in), "Sure?", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestParseArgs(t *testing.T) {
	m, err := ParseArgs([]string{"search=ana", "rol=2", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"search": "ana", "rol": "2", "empty": ""}, m)

	_, err = ParseArgs([]string{"bare"})
	assert.Error(t, err)
	_, err = ParseArgs([]string{"=v"})
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"12"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, args := range [][]string{nil, {"1", "2"}, {"abc"}, {"0"}, {"-3"}} {
		_, err := parseID(args)
		assert.Error(t, err, args)
	}
}
