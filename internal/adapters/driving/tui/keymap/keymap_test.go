package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Submit.Keys(), "enter")
	assert.Contains(t, km.Market.Keys(), "tab")
	assert.Contains(t, km.Sync.Keys(), "s")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
	assert.True(t, Matches("tab", km.Market))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.ResultsHelp(), 4)
	assert.Len(t, km.FullHelp(), 3)
}
