package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m KeysModel, text string) KeysModel {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(KeysModel)
	}
	return m
}

func press(m KeysModel, key string) KeysModel {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	updated, _ := m.Update(msg)
	return updated.(KeysModel)
}

func TestNewKeysModelInit(t *testing.T) {
	m := NewKeysModel()
	assert.NotNil(t, m.Init())
	assert.False(t, m.Done())
	assert.False(t, m.Aborted())
}

func TestKeysModelView(t *testing.T) {
	view := NewKeysModel().View()

	assert.Contains(t, view, "Tenable.io API keys")
	assert.Contains(t, view, "Access key")
	assert.Contains(t, view, "Secret key")
	assert.Contains(t, view, "esc abort")
}

func TestKeysModelSubmitFlow(t *testing.T) {
	m := NewKeysModel()
	m = typeText(m, "ak-123")
	m = press(m, "tab")
	m = typeText(m, "sk-456")
	m = press(m, "enter")

	require.True(t, m.Done())
	access, secret, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, "ak-123", access)
	assert.Equal(t, "sk-456", secret)
}

func TestKeysModelEnterOnAccessMovesToSecret(t *testing.T) {
	m := NewKeysModel()
	m = typeText(m, "ak")
	m = press(m, "enter")

	assert.False(t, m.Done())

	m = typeText(m, "sk")
	m = press(m, "enter")
	assert.True(t, m.Done())
}

func TestKeysModelRejectsEmptySubmit(t *testing.T) {
	m := NewKeysModel()
	m = press(m, "tab")
	m = press(m, "enter")

	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "both keys are required")
}

func TestKeysModelEscAborts(t *testing.T) {
	m := press(NewKeysModel(), "esc")
	assert.True(t, m.Aborted())
	assert.False(t, m.Done())
}

func TestKeysModelSecretMasked(t *testing.T) {
	m := NewKeysModel()
	m = press(m, "tab")
	m = typeText(m, "topsecret")

	assert.NotContains(t, m.View(), "topsecret")
}
