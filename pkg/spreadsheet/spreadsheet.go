// Package spreadsheet decodes and encodes tabular contact files. It speaks
// delimited text (csv) and workbook binaries (xlsx, xls) and hands rows to
// callers as header-keyed maps, in file order.
package spreadsheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/databankhq/databank/pkg/serrors"
)

var (
	ErrUnsupportedFormat = serrors.NewError("UNSUPPORTED_FORMAT", "unsupported file format")
	ErrParse             = serrors.NewError("PARSE_ERROR", "file could not be parsed")
)

// Row is one data row keyed by the raw header labels of the source file.
type Row map[string]string

// Ext extracts the lower-cased extension from a file name, without the dot.
func Ext(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// ParseFile decodes the file into rows. Rows where every cell is empty are
// dropped. The header row is taken from the first line (csv) or the first
// row of the first sheet (xlsx, xls). The workbook decoder reads OOXML
// content only: an xls file holding a legacy BIFF binary fails with a parse
// error telling the operator to re-save as xlsx.
func ParseFile(r io.Reader, ext string) ([]Row, error) {
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case "csv":
		return parseCSV(r)
	case "xlsx":
		return parseWorkbook(r)
	case "xls":
		rows, err := parseWorkbook(r)
		if err != nil {
			return nil, serrors.NewError(ErrParse.Code, "legacy xls workbook could not be decoded; re-save the file as xlsx")
		}
		return rows, nil
	default:
		return nil, serrors.NewError(ErrUnsupportedFormat.Code, fmt.Sprintf("unsupported file format: %q", ext))
	}
}

func parseCSV(r io.Reader) ([]Row, error) {
	br := stripUTF8BOM(bufio.NewReader(r))

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, serrors.NewError(ErrParse.Code, err.Error())
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, serrors.NewError(ErrParse.Code, err.Error())
		}
		row := recordToRow(header, rec)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, serrors.NewError(ErrParse.Code, err.Error())
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, serrors.NewError(ErrParse.Code, "workbook has no sheets")
	}

	// First sheet only. GetRows reduces rich-text and hyperlink cells to
	// their display text.
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, serrors.NewError(ErrParse.Code, err.Error())
	}
	if len(all) == 0 {
		return nil, nil
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, rec := range all[1:] {
		row := recordToRow(header, rec)
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
	}
	return h, nil
}

// recordToRow maps a record onto the header. Returns an empty map when no
// cell carries a value, which callers treat as a skippable row.
func recordToRow(header []string, rec []string) Row {
	row := make(Row, len(header))
	hasValue := false
	for i, name := range header {
		if name == "" {
			continue
		}
		var v string
		if i < len(rec) {
			v = rec[i]
		}
		row[name] = v
		if strings.TrimSpace(v) != "" {
			hasValue = true
		}
	}
	if !hasValue {
		return Row{}
	}
	return row
}
