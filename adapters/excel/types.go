package excel

// RawData is a tabular file as trimmed strings: a header row plus data rows.
// Every data row has exactly len(Headers) cells.
type RawData struct {
	Headers []string
	Rows    [][]string
	// Lines holds the 1-based source line of each data row, for error messages.
	Lines []int
}
