package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("everything")
	assert.ErrorContains(t, err, `unknown category "everything"`)

	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestRoomCategories(t *testing.T) {
	room := make(map[Category]bool)
	for _, c := range RoomCategories {
		room[c] = true
	}

	// Chat, tips and audience traffic only arrive while joined; the
	// session-level properties arrive regardless.
	assert.True(t, room[CategoryChat])
	assert.True(t, room[CategoryTips])
	assert.True(t, room[CategoryViewers])
	assert.True(t, room[CategoryAll])
	assert.True(t, room[CategoryNoChat])

	assert.False(t, room[CategoryRank])
	assert.False(t, room[CategoryTopic])
	assert.False(t, room[CategoryState])
	assert.False(t, room[CategoryCamscore])
}
