package excel

// ExcelConfig holds configuration for a spreadsheet sample source
type ExcelConfig struct {
	FilePath string   `json:"file_path"`
	Sheet    string   `json:"sheet"`
	Columns  []string `json:"columns,omitempty"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet input
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet: "Sheet1",
	}
}
