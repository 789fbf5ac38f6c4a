package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"numkit/domain/core"
	"numkit/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into Sheet1 of a fresh workbook
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "samples.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadColumnsFromWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"visits", "orders", "notes"},
		{2, 10, "a"},
		{4, 20, "b"},
		{4, nil, "c"},
		{9, 30, "d"},
	})

	reader := NewDataReader(path)
	columns, err := reader.ReadColumns("orders", "visits")
	require.NoError(t, err)

	require.Len(t, columns, 2)
	assert.Equal(t, "orders", columns[0].Name)
	assert.Equal(t, stats.Sample{10, 20, 30}, columns[0].Sample)
	assert.Equal(t, "visits", columns[1].Name)
	assert.Equal(t, stats.Sample{2, 4, 4, 9}, columns[1].Sample)
}

func TestReadColumnsRejectsNonInteger(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"visits", "notes"},
		{2, "a"},
	})

	_, err := NewDataReader(path).ReadColumns()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "B2")
}

func TestReadColumnsUnknownColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"visits"}, {1}})

	_, err := NewDataReader(path).ReadColumns("missing")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestReadColumnsFromNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "A1", "score"))
	require.NoError(t, f.SetCellValue("Data", "A2", 7))
	require.NoError(t, f.SetCellValue("Data", "A3", 3))
	path := filepath.Join(t.TempDir(), "named.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewDataReaderFromConfig(ExcelConfig{FilePath: path, Sheet: "Data"})
	columns, err := reader.ReadColumns("score")
	require.NoError(t, err)
	assert.Equal(t, stats.Sample{7, 3}, columns[0].Sample)
}

func TestReadColumnsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	content := "a,b\n1,5\n2,\n3,7.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	columns, err := NewDataReader(path).ReadColumns()
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, stats.Sample{1, 2, 3}, columns[0].Sample)
	assert.Equal(t, stats.Sample{5, 7}, columns[1].Sample)
}

func TestReadDataMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "absent.xlsx")).ReadData()
	assert.Error(t, err)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"-7", -7, false},
		{"3.0", 3, false},
		{"3.5", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-9223372036854775808", math.MinInt, false},
		{"9223372036854775807", math.MaxInt, false},
		{"9223372036854775808", 0, true},
		{"9.223372036854775808e18", 0, true},
		{"-9.3e18", 0, true},
	}
	for _, tt := range tests {
		got, err := parseInteger(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
