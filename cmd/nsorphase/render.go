package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/RyanBlaney/latency-benchmark-common/output"
	"gopkg.in/yaml.v3"
)

// writeRecord prints a flat summary with the shared output formatters.
func writeRecord(w io.Writer, format string, rec map[string]any) error {
	var formatter output.Formatter
	switch format {
	case "json":
		formatter = &output.JSONFormatter{}
	case "yaml":
		formatter = &output.YAMLFormatter{}
	case "csv":
		formatter = &output.CSVFormatter{}
	case "table":
		formatter = &output.TableFormatter{}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	data, err := formatter.Format(rec, true)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// series is a column-oriented numeric table.
type series struct {
	header []string
	rows   [][]float64
}

func (s series) objects() []map[string]float64 {
	out := make([]map[string]float64, len(s.rows))
	for i, row := range s.rows {
		m := make(map[string]float64, len(s.header))
		for j, h := range s.header {
			m[h] = row[j]
		}
		out[i] = m
	}
	return out
}

// writeSeries prints s in the requested format.
func writeSeries(w io.Writer, format string, precision int, s series) error {
	fmtFloat := func(v float64) string {
		return strconv.FormatFloat(v, 'E', precision, 64)
	}

	switch format {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		for i, h := range s.header {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, h)
		}
		fmt.Fprintln(tw, "\t")
		for _, row := range s.rows {
			for i, v := range row {
				if i > 0 {
					fmt.Fprint(tw, "\t")
				}
				fmt.Fprint(tw, fmtFloat(v))
			}
			fmt.Fprintln(tw, "\t")
		}
		return tw.Flush()
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(s.header); err != nil {
			return err
		}
		rec := make([]string, len(s.header))
		for _, row := range s.rows {
			for i, v := range row {
				rec[i] = fmtFloat(v)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.objects())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.objects()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
