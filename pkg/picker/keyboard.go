package picker

import "github.com/sipeed/picotts/pkg/elevenlabs"

const (
	// DefaultLimit is how many directory entries the picker offers.
	DefaultLimit = 20

	// DefaultPerRow is how many buttons share a keyboard row.
	DefaultPerRow = 2
)

// Button is one selectable voice.
type Button struct {
	Text string
	Data string
}

// Layout offers the first limit voices as buttons, perRow per row. The last
// row may be shorter. Non-positive arguments fall back to the defaults.
func Layout(voices []elevenlabs.Voice, limit, perRow int) [][]Button {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if perRow <= 0 {
		perRow = DefaultPerRow
	}
	if len(voices) > limit {
		voices = voices[:limit]
	}

	rows := make([][]Button, 0, (len(voices)+perRow-1)/perRow)
	var row []Button
	for _, v := range voices {
		row = append(row, Button{Text: v.Name, Data: Encode(v.VoiceID, v.Name)})
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// Count returns the number of buttons across all rows.
func Count(rows [][]Button) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	return n
}
