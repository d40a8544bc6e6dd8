package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// csvSheetName is the name reported for the single sheet of a CSV input.
const csvSheetName = "Sheet1"

// csvSource holds a decoded delimited-text payload.
type csvSource struct {
	rowsData [][]string
}

func openCSV(data []byte, opts Options) (*csvSource, error) {
	decoder, err := csvDecoder(data, opts.CSVEncoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), decoder))
	configureReader(reader, opts)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return &csvSource{rowsData: rows}, nil
}

// configureReader applies the delimiter and tolerances used for exports.
func configureReader(r *csv.Reader, opts Options) {
	r.Comma = ','
	if opts.CSVDelimiter != 0 {
		r.Comma = opts.CSVDelimiter
	}
	// Exports are ragged and occasionally carry stray quotes.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
}

// csvDecoder picks the text decoder for data. In "auto" mode a byte order
// mark wins; otherwise valid UTF-8 is kept and anything else is read as
// Windows-1252.
func csvDecoder(data []byte, name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		fallback := encoding.Nop.NewDecoder()
		if !utf8.Valid(data) {
			fallback = charmap.Windows1252.NewDecoder()
		}
		return unicode.BOMOverride(fallback), nil
	case "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown CSV encoding %q", name)
	}
}

func (s *csvSource) sheetNames() []string {
	return []string{csvSheetName}
}

func (s *csvSource) rows(string) ([][]string, error) {
	return s.rowsData, nil
}

func (s *csvSource) close() error {
	return nil
}
