// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format names a report encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatCSV     Format = "csv"
)

// ParseFormat accepts json, msgpack (or mp) and csv, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", reportErrorf("ParseFormat", fmt.Errorf("%w: %q", ErrUnknownFormat, s))
	}
}

// Write encodes r to w.
//
// CSV layout: a header "t" followed by the labels, then one row per sample.
func Write(w io.Writer, r *Report, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case FormatMsgpack:
		err = msgpack.NewEncoder(w).Encode(r)
	case FormatCSV:
		err = writeCSV(w, r)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return reportErrorf("Write", err)
	}

	return nil
}

// Read decodes a report written by Write. CSV returns ErrReadUnsupported.
func Read(rd io.Reader, f Format) (*Report, error) {
	var (
		r   Report
		err error
	)
	switch f {
	case FormatJSON:
		err = json.NewDecoder(rd).Decode(&r)
	case FormatMsgpack:
		err = msgpack.NewDecoder(rd).Decode(&r)
	case FormatCSV:
		err = ErrReadUnsupported
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, reportErrorf("Read", err)
	}

	return &r, nil
}

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"t"}, r.Labels...)); err != nil {
		return err
	}
	row := make([]string, len(r.Labels)+1)
	for j, t := range r.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for i := range r.Labels {
			row[i+1] = strconv.FormatFloat(r.Probs[i][j], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
