// SPDX-License-Identifier: MIT

package archive

import (
	"fmt"

	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/vmihailenco/msgpack/v5"
)

// CurrentCodecVersion tags every encoded payload.
const CurrentCodecVersion = 1

type record struct {
	CodecVersion int            `msgpack:"codec_version"`
	Report       *report.Report `msgpack:"report"`
}

// EncodeReport serializes r with the current codec version.
func EncodeReport(r *report.Report) ([]byte, error) {
	return msgpack.Marshal(record{CodecVersion: CurrentCodecVersion, Report: r})
}

// DecodeReport parses a payload written by EncodeReport.
func DecodeReport(data []byte) (*report.Report, error) {
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.CodecVersion != CurrentCodecVersion {
		return nil, fmt.Errorf("%w: codec %d, want %d", ErrVersionMismatch, rec.CodecVersion, CurrentCodecVersion)
	}
	if rec.Report == nil {
		return nil, ErrNilReport
	}

	return rec.Report, nil
}
