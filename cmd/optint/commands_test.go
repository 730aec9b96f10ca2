package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

// shortRun keeps the integration cheap.
func shortRun(t *testing.T) {
	t.Setenv("OPTINT_SPAN", "1")
	t.Setenv("OPTINT_DT", "0.1")
	t.Setenv("OPTINT_SAMPLES", "2")
}

func TestChemicalLabelsOnly(t *testing.T) {
	out, _, err := execute(t, "chemical", "--labels-only")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "chemical\t0\t|3⟩at0 |0⟩at1 |0⟩tp |001⟩ω01ω12ω23", lines[0])
	require.Equal(t, "chemical\t1\t|2⟩at0 |0⟩at1 |1⟩tp |000⟩ω01ω12ω23", lines[1])
}

func TestOpticalLabelsOnly(t *testing.T) {
	out, _, err := execute(t, "optical", "--labels-only")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "optical\t0\t|30,0⟩at0tp0an0 |00,2⟩at1tp1an1 |001,0⟩ω01ω12ω23Ω\n"))
}

func TestChemicalRunAndArchive(t *testing.T) {
	shortRun(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, logs, err := execute(t, "chemical", "--archive", db, "--archive-backend", "sqlite")
	require.NoError(t, err)
	require.Contains(t, logs, "energy spectrum")
	require.Contains(t, logs, "report archived")

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Equal(t, "chemical", r.Model)
	require.InDeltaSlice(t, []float64{0, 0.5, 1}, r.Times, 1e-9)
	require.Equal(t, report.Final, r.Classes[0]) // the seed barely moves in a short run

	out, _, err = execute(t, "runs", "list", "--archive", db, "--archive-backend", "sqlite")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, r.RunID+"\tchemical\t"))

	out, _, err = execute(t, "runs", "show", r.RunID, "--archive", db, "--archive-backend", "sqlite", "--format", "csv")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "t,|3⟩at0 |0⟩at1 |0⟩tp |001⟩ω01ω12ω23,"))

	_, _, err = execute(t, "runs", "show", "nope", "--archive", db, "--archive-backend", "sqlite")
	require.ErrorContains(t, err, "not found")
}

func TestArchivePathDefaultsToSQLite(t *testing.T) {
	shortRun(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, _, err := execute(t, "chemical", "--archive", db)
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	out, _, err = execute(t, "runs", "list", "--archive", db)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, r.RunID+"\tchemical\t"))

	_, _, err = execute(t, "chemical", "--archive", db, "--archive-backend", "memory")
	require.Error(t, err)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "chemical", "--format", "xml")
	require.Error(t, err)

	_, _, err = execute(t, "runs", "show")
	require.Error(t, err) // run id required
}
