// Package ingest reads a bank's exported CSV into header-keyed rows. The
// engine itself never touches files; this package is the I/O collaborator
// feeding it.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
)

// gocsv configures its reader through package-global state, so the
// configure-then-parse sequence is serialized here to keep concurrent
// Records calls from seeing each other's delimiter.
var readerMu sync.Mutex

// Encoding names accepted by Decode.
const (
	EncodingUTF16 = "utf-16"
	EncodingUTF8  = "utf-8"
	EncodingAuto  = "auto"
)

// Records parses CSV bytes, already decoded to UTF-8, into one map per data
// row keyed by the header names. Header names are trimmed; cell values are
// kept verbatim for the normalizer to interpret.
func Records(data []byte, delimiter rune) ([]map[string]string, error) {
	readerMu.Lock()
	defer readerMu.Unlock()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		if delimiter != 0 {
			r.Comma = delimiter
		}
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})

	rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	for _, row := range rows {
		for key, value := range row {
			trimmed := strings.TrimSpace(key)
			if trimmed != key {
				delete(row, key)
				row[trimmed] = value
			}
		}
	}
	return rows, nil
}

// Decode converts raw file bytes to UTF-8. The bank export default is
// UTF-16 LE with a BOM; "auto" sniffs the BOM and falls back to UTF-8 with
// a Latin-1 rescue for files that are not valid UTF-8.
func Decode(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case EncodingUTF16:
		return decodeUTF16(data)
	case EncodingUTF8, "":
		return normalizeUTF8(data), nil
	case EncodingAuto:
		if hasUTF16BOM(data) {
			return decodeUTF16(data)
		}
		return normalizeUTF8(data), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 &&
		((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}

func decodeUTF16(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("utf-16 input has odd length %d", len(data))
	}

	// Little-endian unless the BOM says otherwise.
	bigEndian := len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF
	if hasUTF16BOM(data) {
		data = data[2:]
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	return []byte(string(utf16.Decode(units))), nil
}

// normalizeUTF8 strips a UTF-8 BOM and re-encodes Latin-1 bytes when the
// input is not valid UTF-8, so a mislabeled export still parses.
func normalizeUTF8(data []byte) []byte {
	data = stripUTF8BOM(data)
	if utf8.Valid(data) {
		return data
	}
	return decodeLatin1(data)
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func decodeLatin1(data []byte) []byte {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return []byte(string(runes))
}
