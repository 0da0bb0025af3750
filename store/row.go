package store

import (
	"encoding/csv"
	"fmt"
	"io"
)

// The CSV files all carry a header row, and we key fields by header name
// rather than position; that way old files keep loading when columns move.

type RowReader struct {
	csvreader *csv.Reader
	headers  []string
}

func NewRowReader(ioreader io.Reader) *RowReader {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	rdr.headers,_ = rdr.csvreader.Read() // Discard err, we'll get it when we try to get next row
	return &rdr
}

type Row map[string]string

func (r *RowReader)Read() (Row,error) {
	m := map[string]string{}

	vals,err := r.csvreader.Read()
	if err != nil {
		return m,err
	} else if len(r.headers) != len(vals) {
		return m, fmt.Errorf("header/val mismatch (%d/%d)", len(r.headers), len(vals))
	}

	for i := range vals {
		m[r.headers[i]] = vals[i]
	}

	return m,nil
}
