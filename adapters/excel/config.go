package excel

// ReaderConfig holds configuration for reading a data file
type ReaderConfig struct {
	// SheetName is the worksheet read from .xlsx files.
	SheetName string `json:"sheet_name"`
	// Comma is the CSV field delimiter.
	Comma rune `json:"comma"`
}

// DefaultReaderConfig returns the settings for the diabetes CSV export
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		SheetName: "Sheet1",
		Comma:     ',',
	}
}
