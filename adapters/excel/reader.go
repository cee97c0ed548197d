package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"diabex/domain/core"
	"diabex/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files.
// Anything without an .xlsx extension is read as CSV.
func NewDataReader(filePath string, config ReaderConfig, logger *internal.Logger) *DataReader {
	fileType := "csv"
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		fileType = "xlsx"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		logger:   logger.With("DataReader"),
	}
}

// ReadData reads the header and data rows of the file
func (r *DataReader) ReadData() (*RawData, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	info, err := os.Stat(r.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.NewSourceNotFoundError(r.filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", r.filePath, err)
	}
	if info.IsDir() {
		return nil, core.NewSourceNotFoundError(r.filePath + " (is a directory)")
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcelData()
	default:
		return r.readCSVData()
	}
}

// readExcelData reads the configured sheet into RawData
func (r *DataReader) readExcelData() (*RawData, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", core.ErrParse, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", core.ErrParse, r.config.SheetName, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.config.SheetName, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}

	// excelize drops trailing empty cells, so short rows are padded rather than rejected
	return r.processRows(rows, lines, true)
}

// readCSVData reads CSV data into RawData
func (r *DataReader) readCSVData() (*RawData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	rows, lines, err := ReadCSV(file, r.config.Comma)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows, lines, false)
}

// ReadCSV reads all records from rd together with the source line each record
// starts on. Rows may have differing field counts; shape is checked by the caller.
func ReadCSV(rd io.Reader, comma rune) ([][]string, []int, error) {
	reader := csv.NewReader(rd)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to read CSV: %v", core.ErrParse, err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	return rows, lines, nil
}

// processRows trims cells, checks the header and squares every row against it
func (r *DataReader) processRows(rows [][]string, lines []int, padShort bool) (*RawData, error) {
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, core.NewParseError(1, "", "missing header row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if headers[i] == "" {
			return nil, core.NewParseError(lines[0], "", fmt.Sprintf("header %d is empty", i+1))
		}
	}

	data := &RawData{Headers: headers}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		line := lines[i]
		if isEmptyLine(row) {
			continue
		}
		if len(row) > len(headers) || (len(row) < len(headers) && !padShort) {
			return nil, core.NewParseError(line, "", fmt.Sprintf("expected %d fields, got %d", len(headers), len(row)))
		}

		cells := make([]string, len(headers))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data.Rows = append(data.Rows, cells)
		data.Lines = append(data.Lines, line)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data.Rows))
	return data, nil
}

// isEmptyLine matches rows with no cells at all or a single blank cell.
// A row of empty delimited fields is kept and yields nulls.
func isEmptyLine(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
