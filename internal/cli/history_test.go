package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/placer/internal/engine"
	"github.com/roach88/placer/internal/roster"
	"github.com/roach88/placer/internal/store"
)

// seedHistory records two runs of a small roster, one hour apart.
func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "placer.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	people := []*roster.Person{
		{Name: "ana", Preferences: []string{"chess"}},
		{Name: "ben", Preferences: []string{"chess"}},
	}
	activities := []*roster.Activity{
		{Name: "chess", Min: 1, Max: 4},
	}
	eng, err := engine.New(people, activities)
	require.NoError(t, err)
	result := eng.Assign()

	base := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.WriteRun(context.Background(), "run-old", base, result))
	require.NoError(t, st.WriteRun(context.Background(), "run-new", base.Add(time.Hour), result))

	return dbPath
}

func TestHistory_ListsNewestFirst(t *testing.T) {
	dbPath := seedHistory(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	newIdx := bytes.Index(buf.Bytes(), []byte("run-new"))
	oldIdx := bytes.Index(buf.Bytes(), []byte("run-old"))
	require.GreaterOrEqual(t, newIdx, 0, out)
	require.GreaterOrEqual(t, oldIdx, 0, out)
	assert.Less(t, newIdx, oldIdx, "newest run listed first")
	assert.Contains(t, out, "n1=2")
}

func TestHistory_ListJSON(t *testing.T) {
	dbPath := seedHistory(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--limit", "1"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	records := resp.Data.([]any)
	require.Len(t, records, 1)
}

func TestHistory_ShowRunByToken(t *testing.T) {
	dbPath := seedHistory(t)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--token", "run-old"})

	require.NoError(t, cmd.Execute())

	var result engine.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 2, result.Statistics.Summary.N1)
	assert.Equal(t, []string{"ana", "ben"}, result.Assignments["chess"])
}

func TestHistory_UnknownToken(t *testing.T) {
	dbPath := seedHistory(t)

	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--token", "run-ghost"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_MissingDatabase(t *testing.T) {
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "nope.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
