// Package alfred turns display items into Alfred script filter feedback.
package alfred

import (
	"encoding/json"
	"io"

	aw "github.com/deanishe/awgo"
	"github.com/pkg/errors"

	"github.com/hrygo/epochwf/plugin/display"
)

// NewFeedback builds script filter feedback with one valid item per value.
// An empty list is returned as-is so Alfred shows no results.
func NewFeedback(items []display.Item) *aw.Feedback {
	fb := aw.NewFeedback()
	for _, it := range items {
		fb.NewItem(it.Title).
			Subtitle(it.Subtitle).
			Arg(it.Arg).
			Copytext(it.Arg).
			Valid(true)
	}
	return fb
}

// Write encodes fb as script filter JSON.
func Write(w io.Writer, fb *aw.Feedback) error {
	data, err := json.Marshal(fb)
	if err != nil {
		return errors.Wrap(err, "failed to encode feedback")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write feedback")
	}
	return nil
}
