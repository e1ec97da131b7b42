package logger

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/ZombieAlex/MFCLogger/internal/replay"
)

// TestReplayConsoleTranscript replays a short recorded session through a
// full engine and compares the console transcript byte-for-byte. The
// fixture clock is frozen so duration annotations are stable.
func TestReplayConsoleTranscript(t *testing.T) {
	fx := newFixture(t, []Selector{
		{ID: 42, What: []Category{CategoryNoChat, CategoryViewers}, NoFile: true},
	})

	session := strings.Join([]string{
		`{"type":"update","uid":42,"name":"AliceCam","vs":0}`,
		`{"type":"update","uid":42,"rank":151}`,
		`{"type":"update","uid":42,"rank":149}`,
		`{"type":"update","uid":42,"topic":"tip goal night"}`,
		`{"type":"tip","uid":42,"from":"bigTipper","tokens":500}`,
		`{"type":"chat","uid":42,"from":"guest77","text":"hello room"}`,
		`{"type":"guests","uid":42,"count":12}`,
		`{"type":"member","uid":42,"action":"join","sid":77,"user":1001,"member":"roomFan","level":"premium"}`,
		`{"type":"member","uid":42,"action":"part","sid":77}`,
		`{"type":"update","uid":42,"viewers":25}`,
		`{"type":"update","uid":42,"camscore":212.55}`,
		`{"type":"update","uid":42,"vs":127}`,
	}, "\n")

	n, err := replay.Stream(strings.NewReader(session), fx.feed)
	require.NoError(t, err)
	require.Equal(t, 12, n)

	g := goldie.New(t)
	g.Assert(t, "replay_console", fx.console.Bytes())
}
