package engine

import (
	"github.com/civiltoolbox/toolbox/internal/formula"
	"github.com/civiltoolbox/toolbox/pkg/models"
)

// ParseInput reads raw editor text as a number. Anything that is not a
// number becomes 0; bad input is never reported as an error.
func ParseInput(raw string) float64 {
	v, ok := formula.ParseFloat(raw)
	if !ok {
		return 0
	}
	return v
}

// InitialInputs seeds one entry per declared field from its default.
// Non-numeric fields carry their default as text and are coerced through
// ParseInput, so a missing or non-numeric default becomes 0.
func InitialInputs(tool models.Tool) models.Inputs {
	in := make(models.Inputs, len(tool.Fields))
	for _, f := range tool.Fields {
		switch f.Type {
		case models.FieldNumber, "":
			in[f.ID] = f.Default
		default:
			in[f.ID] = ParseInput(f.DefaultText)
		}
	}
	return in
}

// MergeInputs overlays raw values onto the defaults. Keys that are not
// declared fields are dropped.
func MergeInputs(tool models.Tool, raw map[string]string) models.Inputs {
	in := InitialInputs(tool)
	for id, text := range raw {
		if _, ok := in[id]; ok {
			in[id] = ParseInput(text)
		}
	}
	return in
}
