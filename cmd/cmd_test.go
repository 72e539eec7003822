package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/store"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = statsCmd.Flags().Set("export", "")
		_ = resetCmd.Flags().Set("yes", "false")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func seedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parley.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendPracticeEvent(ctx, store.PracticeEventData{
		SessionID: "s-1", Section: "grammar", EntryID: "g1", Activity: "exercise",
		Score: 3, Total: 4, Detail: "3/4 correct", Duration: 90 * time.Second,
	}))
	require.NoError(t, repo.AppendPracticeEvent(ctx, store.PracticeEventData{
		SessionID: "s-2", Section: "typing", EntryID: "t1", Activity: "practice",
		Score: 98, Total: 100, WPM: 45, Accuracy: 98, TargetMet: true,
	}))
	return path
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "", "score", "I am going to the market", "I am going to market")
	require.NoError(t, err)
	assert.Equal(t, "83% Excellent\n", out)
}

func TestScoreCommand_NeedsTwoArgs(t *testing.T) {
	_, err := execute(t, "", "score", "only one")
	assert.Error(t, err)
}

func TestCatalogValidate_BuiltIn(t *testing.T) {
	out, err := execute(t, "", "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog is valid")
}

func TestCatalogValidate_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("typing:\n  - {id: t1}\n"), 0o644))

	out, err := execute(t, "", "catalog", "validate", dir)
	require.Error(t, err)
	assert.Contains(t, out, "bad.yaml")
}

func TestStatsCommand(t *testing.T) {
	db := seedStore(t)
	out, err := execute(t, "", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "grammar")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "typing")
}

func TestStatsCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	out, err := execute(t, "", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No practice recorded yet")
}

func TestStatsCommand_Export(t *testing.T) {
	db := seedStore(t)
	xlsx := filepath.Join(t.TempDir(), "history.xlsx")

	out, err := execute(t, "", "stats", "--db", db, "--export", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 results")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Sequence", rows[0][0])
	// Newest first.
	assert.Equal(t, "typing", rows[1][2])
	assert.Equal(t, "grammar", rows[2][2])
	assert.Equal(t, "75", rows[2][7])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Len(t, summary, 3)
}

func TestResetCommand(t *testing.T) {
	db := seedStore(t)

	out, err := execute(t, "no\n", "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")

	out, err = execute(t, "", "reset", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	events, err := st.EventRepo().QueryPracticeEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "parley "))
}

func TestShufflerFromFlags(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.Flags().Set("seed", "0") })
	assert.Nil(t, shufflerFromFlags(rootCmd))

	require.NoError(t, rootCmd.Flags().Set("seed", "42"))
	deal := func() []string {
		var out []string
		ws := make([]catalog.Word, 8)
		for i := range ws {
			ws[i] = catalog.Word{ID: fmt.Sprintf("w%d", i), Word: "w", Meaning: "m"}
		}
		for _, w := range memorymatch.Deal(ws, 6, shufflerFromFlags(rootCmd)).Words {
			out = append(out, w.ID)
		}
		return out
	}
	assert.Equal(t, deal(), deal())
}

func TestLogLevel(t *testing.T) {
	t.Setenv("PARLEY_LOG_LEVEL", "debug")
	assert.Equal(t, "DEBUG", logLevel(0).String())
	t.Setenv("PARLEY_LOG_LEVEL", "")
	assert.Equal(t, "WARN", logLevel(4).String())
}

func TestLogPath(t *testing.T) {
	t.Setenv("PARLEY_LOG", "")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := logPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/state", "parley", "parley.log"), p)

	t.Setenv("PARLEY_LOG", "/tmp/custom.log")
	p, err = logPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", p)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PARLEY_TEST_DOTENV=from-file\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PARLEY_TEST_DOTENV", "")
	os.Unsetenv("PARLEY_TEST_DOTENV")

	require.NoError(t, loadDotEnv())
	assert.Equal(t, "from-file", os.Getenv("PARLEY_TEST_DOTENV"))
}
