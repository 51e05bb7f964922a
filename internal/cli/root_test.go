package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// execute runs the CLI against a throwaway database and returns stdout.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errw bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errw)
	cmd.SetArgs(append(args, "--db", dbPath, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pos.db")
}

func TestRootRejectsUnknownFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"status", "--format", "yaml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInitAndStatus(t *testing.T) {
	db := testDB(t)

	out, err := execute(t, db, "init", "--tables", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Store ready (6 tables)")

	out, err = execute(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "available 6")
	assert.Contains(t, out, "Queue    serving #0 of #0")
}

func TestInitIsIdempotent(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "init", "--tables", "4")
	require.NoError(t, err)
	_, err = execute(t, db, "queue", "issue")
	require.NoError(t, err)

	// Re-running init must not reset the queue.
	_, err = execute(t, db, "init", "--tables", "4")
	require.NoError(t, err)
	out, err := execute(t, db, "queue", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
}

func TestQueueIssueAndCall(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	out, err := execute(t, db, "queue", "issue")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket #1")

	out, err = execute(t, db, "queue", "issue")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket #2")

	out, err = execute(t, db, "queue", "call")
	require.NoError(t, err)
	assert.Contains(t, out, "Now serving #1 (1 waiting)")

	out, err = execute(t, db, "queue", "call", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"currentServing": 2`)
}

func TestQueueCallOnEmptyQueue(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	out, err := execute(t, db, "queue", "call")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue is empty")
}

func TestExportImportRoundTrip(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "init", "--tables", "3")
	require.NoError(t, err)
	_, err = execute(t, db, "queue", "issue")
	require.NoError(t, err)

	snap := filepath.Join(t.TempDir(), "snap.json")
	_, err = execute(t, db, "export", "--out", snap)
	require.NoError(t, err)

	// Import into a fresh database.
	db2 := testDB(t)
	_, err = execute(t, db2, "import", snap)
	require.NoError(t, err)

	out, err := execute(t, db2, "queue", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
}

func TestImportRejectsBadSnapshot(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, writeFile(bad, `{"menu": {}}`))

	_, err = execute(t, db, "import", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, db, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAuditShowsSeededTrail(t *testing.T) {
	db := testDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	out, err := execute(t, db, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "Audit trail is empty")
}
