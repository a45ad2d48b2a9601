// Package report serializes analysis results: the result file in one of
// several formats, a run summary, and an optional sharpness chart.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/backmassage/autofocus/internal/errs"
	"github.com/backmassage/autofocus/internal/frame"
)

// Format selects the result file encoding.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// csvHeader is the first record of a CSV result file.
var csvHeader = []string{"frame", "sharpness"}

// jsonRecord is one element of a JSON result file.
type jsonRecord struct {
	Frame     uint64  `json:"frame"`
	Sharpness float64 `json:"sharpness"`
	File      string  `json:"file"`
}

// WriteFile creates (or truncates) path and writes frames to it in the
// given format. Any open or write failure is an [errs.KindOutputWrite]
// error naming path.
func WriteFile(path string, frames []frame.Info, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.OutputWrite(path, err)
	}
	w := bufio.NewWriter(f)
	if err := Write(w, frames, format); err != nil {
		f.Close()
		return errs.OutputWrite(path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errs.OutputWrite(path, err)
	}
	if err := f.Close(); err != nil {
		return errs.OutputWrite(path, err)
	}
	return nil
}

// Write encodes frames to w in the order given.
func Write(w io.Writer, frames []frame.Info, format Format) error {
	switch format {
	case FormatTSV, "":
		return writeTSV(w, frames)
	case FormatCSV:
		return writeCSV(w, frames)
	case FormatJSON:
		return writeJSON(w, frames)
	default:
		return fmt.Errorf("unknown result format %q", format)
	}
}

// FormatScore renders a score as the shortest decimal that round-trips.
// Integral scores have no decimal point.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTSV(w io.Writer, frames []frame.Info) error {
	for _, f := range frames {
		if _, err := io.WriteString(w, strconv.FormatUint(f.Number, 10)+"\t"+FormatScore(f.Sharpness)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, frames []frame.Info) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range frames {
		if err := cw.Write([]string{strconv.FormatUint(f.Number, 10), FormatScore(f.Sharpness)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, frames []frame.Info) error {
	records := make([]jsonRecord, len(frames))
	for i, f := range frames {
		records[i] = jsonRecord{Frame: f.Number, Sharpness: f.Sharpness, File: f.Path}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
