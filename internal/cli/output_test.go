package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := WrapExitError(ExitCommandError, "open database", base)
	assert.EqualError(t, err, "open database: boom")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "rejected")))
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]int{"ticket": 3}))
	assert.Contains(t, buf.String(), `"status": "ok"`)
	assert.Contains(t, buf.String(), `"ticket": 3`)

	buf.Reset()
	require.NoError(t, f.Error("E_SNAPSHOT", "rejected"))
	assert.Contains(t, buf.String(), `"status":"error"`)
	assert.Contains(t, buf.String(), "E_SNAPSHOT")
}

func TestFormatterText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("Ticket #3"))
	assert.Equal(t, "Ticket #3\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Error("E_SEED", "no such table"))
	assert.Equal(t, "Error [E_SEED]: no such table\n", buf.String())
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	var out, errw bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errw, Verbose: true}

	f.VerboseLog("seeding %d tables", 12)
	assert.Empty(t, out.String())
	assert.Equal(t, "seeding 12 tables\n", errw.String())

	f.Verbose = false
	errw.Reset()
	f.VerboseLog("quiet")
	assert.Empty(t, errw.String())
}

func TestFormatBirr(t *testing.T) {
	assert.Equal(t, "550.00 birr", FormatBirr(55000))
	assert.Equal(t, "1,234.50 birr", FormatBirr(123450))
	assert.Equal(t, "0.00 birr", FormatBirr(0))
}
