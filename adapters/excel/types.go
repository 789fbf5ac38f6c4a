package excel

// ExcelData represents a sheet as a header row plus raw string rows
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, possibly shorter than Headers
}
