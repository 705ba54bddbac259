package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
)

// runCLI executes the root command against the database at dbPath.
func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dbPath, "", args...)
	require.NoError(t, err, "remis %s\n%s", strings.Join(args, " "), out)
	return out
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = prev })
	return appFs
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "remis.db")
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, tempDB(t), "version")
	assert.Equal(t, "remis dev\n", out)
}

func TestDriversCommands(t *testing.T) {
	db := tempDB(t)

	assert.Contains(t, mustRun(t, db, "drivers", "list"), "Conductor principal")

	out := mustRun(t, db, "drivers", "add", "Ana", "--vehicle", "remise")
	assert.Contains(t, out, `Added driver "Ana"`)
	assert.Contains(t, mustRun(t, db, "drivers", "list"), "Ana")

	out, err := runCLI(t, db, "n\n", "drivers", "delete", model.DefaultDriverID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion canceled")

	out, err = runCLI(t, db, "y\n", "drivers", "delete", model.DefaultDriverID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted driver")

	list := mustRun(t, db, "drivers", "list")
	assert.NotContains(t, list, "Conductor principal")
	assert.Contains(t, list, "Ana")
}

func TestDriversDeleteLastIsRejected(t *testing.T) {
	_, err := runCLI(t, tempDB(t), "", "drivers", "delete", model.DefaultDriverID, "--force")
	require.Error(t, err)
	assert.True(t, common.IsUserFacing(err))
	assert.ErrorIs(t, err, common.ErrLastDriver)
}

func TestTxAddListAndStats(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "tx", "add", "--amount", "5000", "--date", "2024-01-15", "--notes", "turno noche")
	assert.Contains(t, out, "Added income")

	out = mustRun(t, db, "tx", "add", "--type", "expense", "--category", "fuel", "--amount", "800", "--date", "2024-01-16")
	assert.Contains(t, out, "Added expense")

	list := mustRun(t, db, "tx", "list", "--month", "2024-01")
	assert.Contains(t, list, "2024-01-15")
	assert.Contains(t, list, "turno noche")
	assert.Contains(t, list, "Combustible")

	assert.Contains(t, mustRun(t, db, "tx", "list", "--month", "2024-02"), "No transactions")

	stats := mustRun(t, db, "stats", "--month", "2024-01")
	assert.Contains(t, stats, "Enero 2024")
	assert.Contains(t, stats, "Working days")
	assert.Contains(t, stats, "27")
	assert.Contains(t, stats, "Expenses by category")
}

func TestTxAddRejectsUnknownDriver(t *testing.T) {
	_, err := runCLI(t, tempDB(t), "", "tx", "add", "--amount", "100", "--driver", "ghost")
	require.Error(t, err)
	assert.True(t, common.IsUserFacing(err))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTxAddRequiresAmount(t *testing.T) {
	_, err := runCLI(t, tempDB(t), "", "tx", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestTxRecordUpserts(t *testing.T) {
	db := tempDB(t)

	assert.Contains(t, mustRun(t, db, "tx", "record", "--amount", "100", "--date", "2024-03-04"), "Recorded income")
	assert.Contains(t, mustRun(t, db, "tx", "record", "--amount", "250", "--date", "2024-03-04"), "Updated income")

	list := mustRun(t, db, "tx", "list", "--month", "2024-03")
	assert.Equal(t, 1, strings.Count(list, "2024-03-04"))
}

func TestTxDeleteMissingIsNoop(t *testing.T) {
	out := mustRun(t, tempDB(t), "tx", "delete", "nope")
	assert.Contains(t, out, "nothing to delete")
}

func TestCalendarToggleAffectsStats(t *testing.T) {
	db := tempDB(t)

	assert.Contains(t, mustRun(t, db, "calendar", "toggle", "2024-01-15"), "marked as a day off")
	assert.Contains(t, mustRun(t, db, "calendar", "show", "--month", "2024-01"), "Working days: 26")

	assert.Contains(t, mustRun(t, db, "calendar", "toggle", "2024-01-15"), "working day again")

	out := mustRun(t, db, "calendar", "toggle", "2024-01-14")
	assert.Contains(t, out, "marked as a day off")
	out = mustRun(t, db, "calendar", "toggle", "2024-01-14")
	assert.Contains(t, out, "off every week")
}

func TestWorkdaysSet(t *testing.T) {
	db := tempDB(t)

	assert.Contains(t, mustRun(t, db, "workdays", "set", "domingo", "on"), "now working")
	assert.Contains(t, mustRun(t, db, "calendar", "show", "--month", "2024-01"), "Working days: 31")

	_, err := runCLI(t, db, "", "workdays", "set", "funday", "on")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestBackupExportImport(t *testing.T) {
	fs := useMemFs(t)
	src := tempDB(t)

	mustRun(t, src, "drivers", "add", "Ana")
	mustRun(t, src, "tx", "add", "--amount", "5000", "--date", "2024-01-15")
	assert.Contains(t, mustRun(t, src, "backup", "export", "--out", "backup.json"), "Backup written to backup.json")

	data, err := afero.ReadFile(fs, "backup.json")
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "transaction_records")
	assert.Contains(t, doc, "work_days_config")

	dst := tempDB(t)
	out := mustRun(t, dst, "backup", "import", "backup.json", "--force")
	assert.Contains(t, out, "2 drivers, 1 transactions")
	assert.Contains(t, mustRun(t, dst, "drivers", "list"), "Ana")
	assert.Contains(t, mustRun(t, dst, "tx", "list", "--month", "2024-01"), "2024-01-15")
}

func TestBackupExportDefaultName(t *testing.T) {
	fs := useMemFs(t)

	mustRun(t, tempDB(t), "backup", "export")

	name := defaultBackupName(model.Today())
	exists, err := afero.Exists(fs, name)
	require.NoError(t, err)
	assert.True(t, exists, "expected %s", name)
}

func TestBackupExportToStdout(t *testing.T) {
	useMemFs(t)

	out := mustRun(t, tempDB(t), "backup", "export", "--out", "-")
	assert.Contains(t, out, `"non_working_days"`)
}

func TestBackupImportRejectsInvalidFile(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"drivers": []}`), 0o600))

	db := tempDB(t)
	mustRun(t, db, "drivers", "add", "Ana")

	_, err := runCLI(t, db, "", "backup", "import", "bad.json", "--force")
	require.Error(t, err)
	assert.True(t, common.IsUserFacing(err))
	assert.Contains(t, err.Error(), "nothing was changed")
	assert.Contains(t, mustRun(t, db, "drivers", "list"), "Ana")
}

func TestBackupImportCanBeDeclined(t *testing.T) {
	fs := useMemFs(t)
	src := tempDB(t)
	mustRun(t, src, "backup", "export", "--out", "b.json")
	_, err := fs.Stat("b.json")
	require.NoError(t, err)

	out, err := runCLI(t, tempDB(t), "\n", "backup", "import", "b.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Import canceled")
}

func TestParseMonth(t *testing.T) {
	year, month, err := parseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)

	_, _, err = parseMonth("02/2024")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"0", time.Sunday},
		{"6", time.Saturday},
		{"Lunes", time.Monday},
		{"wed", time.Wednesday},
		{"sábado", time.Saturday},
	}
	for _, tt := range tests {
		got, err := parseWeekday(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseWeekday("7")
	assert.Error(t, err)
}

func TestParseOnOff(t *testing.T) {
	on, err := parseOnOff("SI")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = parseOnOff("off")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = parseOnOff("maybe")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
