package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"numkit/domain/core"
	"numkit/domain/stats"
	"numkit/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader reads integer samples from Excel or CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a reader for the given file. The extension selects the
// format; anything but .csv is treated as a workbook.
func NewDataReader(filePath string) *DataReader {
	cfg := DefaultExcelConfig()
	cfg.FilePath = filePath
	return NewDataReaderFromConfig(cfg)
}

// NewDataReaderFromConfig creates a reader from an ExcelConfig
func NewDataReaderFromConfig(cfg ExcelConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	sheet := cfg.Sheet
	if sheet == "" {
		sheet = DefaultExcelConfig().Sheet
	}
	return &DataReader{
		filePath: cfg.FilePath,
		fileType: fileType,
		sheet:    sheet,
		logger:   internal.DefaultLogger,
	}
}

// ReadData reads the sheet (or CSV file) into headers and raw rows
func (r *DataReader) ReadData() (*ExcelData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, core.NewInvalidArgumentError("%s has no header row", r.filePath)
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}
	return &ExcelData{Headers: headers, Rows: rows[1:]}, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// ReadColumns returns the named columns as integer samples, in the requested
// order. With no names every header is returned. Blank cells are skipped.
func (r *DataReader) ReadColumns(names ...string) ([]stats.Column, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int, len(data.Headers))
	for i, h := range data.Headers {
		if h == "" {
			continue
		}
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	if len(names) == 0 {
		for _, h := range data.Headers {
			if h != "" {
				names = append(names, h)
			}
		}
	}

	columns := make([]stats.Column, 0, len(names))
	for _, name := range names {
		idx, ok := positions[strings.TrimSpace(name)]
		if !ok {
			return nil, core.NewInvalidArgumentError("column %q not found in %s", name, filepath.Base(r.filePath))
		}
		sample, err := columnSample(data.Rows, idx)
		if err != nil {
			return nil, err
		}
		columns = append(columns, stats.Column{Name: data.Headers[idx], Sample: sample})
	}

	r.logger.Info("[DataReader] loaded %d columns from %s", len(columns), filepath.Base(r.filePath))
	return columns, nil
}

func columnSample(rows [][]string, col int) (stats.Sample, error) {
	sample := make(stats.Sample, 0, len(rows))
	for i, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := parseInteger(cell)
		if err != nil {
			// +2: header row and 1-based numbering
			ref, _ := excelize.CoordinatesToCellName(col+1, i+2)
			return nil, core.NewInvalidArgumentError("cell %s: %q is not an integer", ref, cell)
		}
		sample = append(sample, v)
	}
	return sample, nil
}

// parseInteger accepts plain integers and floats with no fractional part,
// which is how spreadsheets often render whole numbers
func parseInteger(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%s is not an int-sized integer", s)
	}
	return int(f), nil
}
