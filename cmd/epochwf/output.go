package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/plugin/alfred"
	"github.com/hrygo/epochwf/plugin/display"
	"github.com/hrygo/epochwf/plugin/epoch"
	"github.com/hrygo/epochwf/store"
)

type resolveOutput struct {
	Query         string         `json:"query"`
	Resolved      bool           `json:"resolved"`
	Timestamp     *float64       `json:"timestamp,omitempty"`
	IsEpochInput  bool           `json:"is_epoch_input"`
	RepresentsNow bool           `json:"represents_now"`
	Items         []display.Item `json:"items"`
}

// writeResult prints a resolution in the requested format. A nil res prints
// an empty result.
func writeResult(w io.Writer, output, query string, res *epoch.Resolution, loc *time.Location) error {
	items := display.Render(res, loc)

	switch output {
	case profile.OutputText:
		tw := newTabWriter(w)
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\n", it.Title, it.Subtitle)
		}
		return errors.Wrap(tw.Flush(), "failed to write result")
	case profile.OutputJSON:
		out := resolveOutput{Query: query, Items: items}
		if out.Items == nil {
			out.Items = []display.Item{}
		}
		if res != nil {
			out.Resolved = true
			out.Timestamp = &res.Timestamp
			out.IsEpochInput = res.IsEpochInput
			out.RepresentsNow = res.RepresentsNow
		}
		return writeJSON(w, out)
	default:
		return alfred.Write(w, alfred.NewFeedback(items))
	}
}

func writeHistory(w io.Writer, output string, records []*store.QueryRecord) error {
	if output == profile.OutputJSON {
		if records == nil {
			records = []*store.QueryRecord{}
		}
		return writeJSON(w, records)
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "CREATED\tQUERY\tRESULT")
	for _, r := range records {
		result := "-"
		if r.Succeeded {
			result = epoch.FloatToTime(r.Timestamp).UTC().Format(time.RFC3339Nano)
		}
		fmt.Fprintf(tw, "%s\t%q\t%s\n", time.Unix(r.CreatedTs, 0).Format(time.DateTime), r.Query, result)
	}
	return errors.Wrap(tw.Flush(), "failed to write history")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode output")
}
