package deals

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Table is a decoded deals report.
type Table struct {
	Delimiter rune
	// Columns are the normalized header names in file order.
	Columns []string
	Records []Record
}

// DetectDelimiter picks the field separator from the header line only:
// ';' if present, else tab, else ','.
func DetectDelimiter(header string) rune {
	switch {
	case strings.ContainsRune(header, ';'):
		return ';'
	case strings.ContainsRune(header, '\t'):
		return '\t'
	default:
		return ','
	}
}

// Decode reads an entire report. Short rows resolve their missing trailing
// cells to "". A *FormatError is returned when there are no data rows or
// any of RequiredRoles has no column.
func Decode(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeString(string(data))
}

func DecodeString(text string) (*Table, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, NewFormatError("empty input", nil)
	}

	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = DetectDelimiter(header)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewFormatError("empty input", nil)
		}
		return nil, NewFormatError("unreadable header", err)
	}

	columns := make([]string, len(head))
	for i, h := range head {
		columns[i] = NormalizeHeader(h)
	}
	roles := resolveRoles(columns)
	if missing := missingRoles(roles); len(missing) > 0 {
		return nil, NewFormatError("missing required columns: "+strings.Join(missing, ", "), nil)
	}

	t := &Table{Delimiter: cr.Comma, Columns: columns}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewFormatError("unreadable row", err)
		}
		if blank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)

		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if _, dup := fields[name]; dup {
				continue
			}
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			fields[name] = v
		}
		t.Records = append(t.Records, Record{Line: line, Fields: fields, roles: roles})
	}

	if len(t.Records) == 0 {
		return nil, NewFormatError("no data rows", nil)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
