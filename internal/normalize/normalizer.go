package normalize

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"investor-reporting/internal/common"
)

// spreadsheetExts holds the extensions dispatched to the spreadsheet path.
var spreadsheetExts = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSpreadsheet reports whether the filename routes through spreadsheet
// normalization.
func IsSpreadsheet(filename string) bool {
	_, ok := spreadsheetExts[NormalizeExt(filepath.Ext(filename))]
	return ok
}

// Normalize converts raw uploaded bytes into a single canonical text blob.
// Spreadsheets are re-rendered as a comma-separated text table (first sheet,
// header row included, no column filtering, no type coercion); anything else
// passes through as UTF-8 text unchanged. Size limiting is the HTTP layer's
// concern, not handled here.
func Normalize(data []byte, filename string) (string, error) {
	if IsSpreadsheet(filename) {
		return spreadsheetToText(data)
	}
	if !utf8.Valid(data) {
		return "", common.WrapError(common.ErrDecode, "file is not valid UTF-8 text")
	}
	return string(data), nil
}

func spreadsheetToText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", common.WrapError(common.ErrParse, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", common.WrapError(common.ErrParse, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", common.WrapError(common.ErrParse, err.Error())
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", common.WrapError(common.ErrParse, err.Error())
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", common.WrapError(common.ErrParse, err.Error())
	}
	return b.String(), nil
}
