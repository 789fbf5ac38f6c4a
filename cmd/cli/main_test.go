package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"numkit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	return decoded, nil
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "stddev", "2", "4", "4", "4", "5", "5", "7", "9")
	require.NoError(t, err)
	assert.Equal(t, 2.0, out["value"])
	assert.Equal(t, "stddev", out["operation"])

	out, err = run(t, "stats", "summary", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, 2.5, out["summary"].(map[string]interface{})["median"])
}

func TestStatsCommandErrors(t *testing.T) {
	_, err := run(t, "stats", "mean")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = run(t, "stats", "mean", "1", "x")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = run(t, "stats", "mode", "1")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestNegativeOperands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want float64
	}{
		{"stats mean", []string{"stats", "mean", "-3", "5"}, 1},
		{"stats range", []string{"stats", "range", "-10", "-2", "4"}, 14},
		{"arith add", []string{"arith", "add", "-1", "2"}, 1},
		{"arith multiply", []string{"arith", "multiply", "-3", "-4"}, 12},
		{"geom distance", []string{"geom", "distance", "-1", "0", "2", "4"}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out["value"])
		})
	}

	out, err := run(t, "stats", "summary", "-1", "-2", "-3")
	require.NoError(t, err)
	assert.Equal(t, -2.0, out["summary"].(map[string]interface{})["mean"])

	out, err = run(t, "arith", "prime", "-7")
	require.NoError(t, err)
	assert.Equal(t, false, out["prime"])
}

func TestColumnsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,10\n3,20\n"), 0o644))

	out, err := run(t, "stats", "columns", path, "--column", "b")
	require.NoError(t, err)

	columns := out["columns"].([]interface{})
	require.Len(t, columns, 1)
	col := columns[0].(map[string]interface{})
	assert.Equal(t, "b", col["name"])
	assert.Equal(t, 15.0, col["summary"].(map[string]interface{})["mean"])
}

func TestColumnsCommandNeedsFile(t *testing.T) {
	t.Setenv("EXCEL_FILE", "")
	_, err := run(t, "stats", "columns")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestArithCommand(t *testing.T) {
	out, err := run(t, "arith", "divide", "6", "4")
	require.NoError(t, err)
	assert.Equal(t, 1.5, out["value"])

	out, err = run(t, "arith", "factorial", "5")
	require.NoError(t, err)
	assert.Equal(t, 120.0, out["value"])

	out, err = run(t, "arith", "prime", "97")
	require.NoError(t, err)
	assert.Equal(t, true, out["prime"])

	_, err = run(t, "arith", "divide", "6", "0")
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	_, err = run(t, "arith", "add", "1")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = run(t, "arith", "factorial", "3", "4")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestGeomCommand(t *testing.T) {
	out, err := run(t, "geom", "distance", "0", "0", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, 5.0, out["value"])
	assert.Equal(t, "distance", out["measure"])

	_, err = run(t, "geom", "circle_area", "r")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestArithCommandOverflow(t *testing.T) {
	_, err := run(t, "arith", "power", "2", "64")
	assert.ErrorIs(t, err, core.ErrOverflow)

	out, err := run(t, "arith", "power", "2", "62")
	require.NoError(t, err)
	assert.Equal(t, float64(1<<62), out["value"])
}

func TestComplexCommand(t *testing.T) {
	out, err := run(t, "complex", "multiply", "2", "3", "4", "-1")
	require.NoError(t, err)
	assert.Equal(t, "multiply", out["operation"])
	z := out["result"].(map[string]interface{})["complex"].(map[string]interface{})
	assert.Equal(t, "11+10i", z["text"])

	out, err = run(t, "complex", "conjugate", "-3", "-4")
	require.NoError(t, err)
	z = out["result"].(map[string]interface{})["complex"].(map[string]interface{})
	assert.Equal(t, "-3+4i", z["text"])

	_, err = run(t, "complex", "divide", "1", "1", "0", "0")
	assert.ErrorIs(t, err, core.ErrDivisionByZero)

	_, err = run(t, "complex", "magnitude", "1")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestHistoryCommand(t *testing.T) {
	out, err := run(t, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, 0.0, out["count"])
}
