package align

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// rawPoint is one unprocessed price row: the timestamp text as read, the
// price, and the 1-based row number for error reporting.
type rawPoint struct {
	Row       int
	Timestamp string
	Price     float64
}

// readPriceSeries reads a two-column CSV (timestamp, price). The first row is
// treated as a header. Extra columns are ignored.
func readPriceSeries(path string) ([]rawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("read %s: no data rows", path)
	}

	points := make([]rawPoint, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("read %s: row %d has %d columns, want 2", path, i+2, len(rec))
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: bad price %q", path, i+2, rec[1])
		}
		points = append(points, rawPoint{
			Row:       i + 2,
			Timestamp: strings.TrimSpace(rec[0]),
			Price:     price,
		})
	}
	return points, nil
}

// readParameterTable reads a flat "Parameter,Values" CSV into a key/value map.
// Keys are lower-cased and trimmed; values keep their raw text so the caller
// can strip currency formatting before numeric conversion.
func readParameterTable(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	kv := make(map[string]string)
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(rec[0]))
		if key == "" {
			continue
		}
		kv[key] = strings.TrimSpace(rec[1])
	}
	return kv, nil
}

// cleanNumeric strips currency symbols and thousands separators from a
// numeric-looking string and parses it.
func cleanNumeric(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	return strconv.ParseFloat(s, 64)
}
