package creds

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPrompter wraps a Prompter and records how often it fires.
type countingPrompter struct {
	inner Prompter
	calls int
}

func (p *countingPrompter) Ask() (string, string, error) {
	p.calls++
	return p.inner.Ask()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), ".tio", "client.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := newTestStore(t)
	want := Credentials{AccessKey: "ak-123", SecretKey: "sk-456"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveRestrictsPermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Credentials{AccessKey: "a", SecretKey: "b"}))

	dirInfo, err := os.Stat(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())
}

func TestSaveWritesExpectedShape(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Credentials{AccessKey: "a", SecretKey: "b"}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "a", raw["tenable_io"]["a_key"])
	assert.Equal(t, "b", raw["tenable_io"]["s_key"])
}

func TestLoadMalformedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0o600))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoadMissingKeysObject(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"other": true}`), 0o600))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestObtainPromptsOnceThenReuses(t *testing.T) {
	s := newTestStore(t)
	prompter := &countingPrompter{inner: ReaderPrompter{
		R: strings.NewReader("ak-123\nsk-456\n"),
		W: &bytes.Buffer{},
	}}

	got, err := s.Obtain(prompter)
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessKey: "ak-123", SecretKey: "sk-456"}, got)
	assert.Equal(t, 1, prompter.calls)

	// Second run finds the file and never prompts.
	again, err := s.Obtain(prompter)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, prompter.calls)
}

func TestObtainDoesNotOverwriteMalformedFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{broken"), 0o600))

	prompter := &countingPrompter{inner: ReaderPrompter{
		R: strings.NewReader("a\nb\n"),
		W: &bytes.Buffer{},
	}}

	_, err := s.Obtain(prompter)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, 0, prompter.calls)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestReaderPrompterOutput(t *testing.T) {
	var out bytes.Buffer
	p := ReaderPrompter{R: strings.NewReader("  one \ntwo\n"), W: &out}

	access, secret, err := p.Ask()
	require.NoError(t, err)
	assert.Equal(t, "one", access)
	assert.Equal(t, "two", secret)
	assert.Contains(t, out.String(), "client.json' not found")
	assert.Contains(t, out.String(), "AccessKey")
	assert.Contains(t, out.String(), "SecretKey")
}

func TestReaderPrompterEOF(t *testing.T) {
	p := ReaderPrompter{R: strings.NewReader("only-one\n"), W: &bytes.Buffer{}}
	_, _, err := p.Ask()
	assert.Error(t, err)
}
