package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZombieAlex/MFCLogger/internal/logger"
	"github.com/ZombieAlex/MFCLogger/internal/mfc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_dir: logs
names_db: names.db
selectors:
  - id: 42
    what: [chat, tips]
    where: alice
  - what: [nochat]
    when:
      online: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "names.db", cfg.NamesDB)
	require.Len(t, cfg.Selectors, 2)
	assert.Equal(t, 42, cfg.Selectors[0].ID)
	assert.Equal(t, "alice", cfg.Selectors[0].Where)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeConfig(t, "selectors: ["))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "log_dir: logs\n"))
	assert.ErrorContains(t, err, "no selectors")
}

func TestCompile_PermanentSelector(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
selectors:
  - id: 42
    what: [chat]
    nofile: true
`))
	require.NoError(t, err)

	sels, err := cfg.Compile()
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, 42, sels[0].ID)
	assert.Equal(t, []logger.Category{logger.CategoryChat}, sels[0].What)
	assert.Nil(t, sels[0].When)
	assert.True(t, sels[0].NoFile)
}

func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"unknown category", "selectors:\n  - id: 1\n    what: [everything]\n", "invalid 'what'"},
		{"missing what", "selectors:\n  - id: 1\n", "missing 'what'"},
		{"neither id nor when", "selectors:\n  - what: [chat]\n", "missing both 'id' and 'when'"},
		{"empty when block", "selectors:\n  - what: [chat]\n    when: {}\n", "empty 'when'"},
		{"bad state name", "selectors:\n  - what: [chat]\n    when:\n      state: dancing\n", "unknown state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.body))
			require.NoError(t, err)
			_, err = cfg.Compile()
			assert.ErrorContains(t, err, tc.want)
			assert.ErrorContains(t, err, "selector 0")
		})
	}
}

func compilePredicate(t *testing.T, when string) logger.Predicate {
	t.Helper()
	cfg, err := Load(writeConfig(t, "selectors:\n  - what: [nochat]\n    when:\n"+when))
	require.NoError(t, err)
	sels, err := cfg.Compile()
	require.NoError(t, err)
	require.NotNil(t, sels[0].When)
	return sels[0].When
}

func TestPredicate_Online(t *testing.T) {
	pred := compilePredicate(t, "      online: true\n")

	m := &mfc.Model{Session: mfc.Session{State: mfc.StateOffline}}
	assert.False(t, pred(m))

	m.Session.State = mfc.StateAway
	assert.True(t, pred(m), "any non-offline state counts as online")
}

func TestPredicate_State(t *testing.T) {
	pred := compilePredicate(t, "      state: private\n")

	m := &mfc.Model{Session: mfc.Session{State: mfc.StateFreeChat}}
	assert.False(t, pred(m))
	m.Session.State = mfc.StatePrivate
	assert.True(t, pred(m))
}

func TestPredicate_RankAtMost(t *testing.T) {
	pred := compilePredicate(t, "      rank_at_most: 100\n")

	m := &mfc.Model{}
	assert.False(t, pred(m), "unknown rank never matches")

	m.Session.RankKnown = true
	m.Session.Rank = 50
	assert.True(t, pred(m))

	m.Session.Rank = 101
	assert.False(t, pred(m))

	// Rank 0 is the off-leaderboard sentinel, not a top placement.
	m.Session.Rank = 0
	assert.False(t, pred(m))
}

func TestPredicate_CamscoreAtLeast(t *testing.T) {
	pred := compilePredicate(t, "      camscore_at_least: 100.5\n")

	m := &mfc.Model{}
	assert.False(t, pred(m), "unknown camscore never matches")

	m.Session.CamscoreKnown = true
	m.Session.Camscore = 100.5
	assert.True(t, pred(m))
	m.Session.Camscore = 100.4
	assert.False(t, pred(m))
}

func TestPredicate_TopicContains(t *testing.T) {
	pred := compilePredicate(t, "      topic_contains: Goal\n")

	m := &mfc.Model{Session: mfc.Session{Topic: "TIP GOAL NIGHT"}}
	assert.True(t, pred(m), "matching is case-insensitive")

	m.Session.Topic = "chatting"
	assert.False(t, pred(m))
}

func TestPredicate_Conjunction(t *testing.T) {
	pred := compilePredicate(t, "      online: true\n      rank_at_most: 10\n")

	m := &mfc.Model{Session: mfc.Session{State: mfc.StateFreeChat, Rank: 5, RankKnown: true}}
	assert.True(t, pred(m))

	m.Session.State = mfc.StateOffline
	assert.False(t, pred(m), "every condition must hold")

	m.Session.State = mfc.StateFreeChat
	m.Session.Rank = 11
	assert.False(t, pred(m))
}

func TestEnv(t *testing.T) {
	t.Setenv("MFCLOGGER_TEST_KEY", "set")
	assert.Equal(t, "set", Env("MFCLOGGER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Env("MFCLOGGER_TEST_KEY_UNSET", "fallback"))
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MFCLOGGER_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("MFCLOGGER_TEST_DOTENV", "") // ensure unset before load

	os.Unsetenv("MFCLOGGER_TEST_DOTENV")
	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv("MFCLOGGER_TEST_DOTENV"))
}
