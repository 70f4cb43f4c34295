package engine

import (
	"errors"
	"fmt"

	"github.com/civiltoolbox/toolbox/pkg/models"
)

// ErrUnknownField is returned by Edit for a field the tool does not declare.
var ErrUnknownField = errors.New("unknown field")

// Calculator is one open calculator view: a tool plus the Input State it
// exclusively owns and the Result State derived from it.
//
// A Calculator is not safe for concurrent use; the session store
// serializes access per session.
type Calculator struct {
	tool   models.Tool
	inputs models.Inputs
	result models.Result
}

// NewCalculator opens tool with its default inputs and evaluates once.
func NewCalculator(tool models.Tool) *Calculator {
	c := &Calculator{tool: tool, inputs: InitialInputs(tool)}
	c.result = Evaluate(tool, c.inputs)
	return c
}

// Edit applies one edit event. The raw text is parsed (0 on failure), the
// Input State is replaced by a copy carrying the new value, and the result
// is recomputed before Edit returns. Last write wins.
func (c *Calculator) Edit(fieldID, raw string) (models.Result, error) {
	if _, ok := c.tool.Field(fieldID); !ok {
		return models.Result{}, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, c.tool.ID, fieldID)
	}
	next := c.inputs.Clone()
	next[fieldID] = ParseInput(raw)
	c.inputs = next
	c.result = Evaluate(c.tool, next)
	return c.result, nil
}

// Tool returns the tool this calculator was opened on.
func (c *Calculator) Tool() models.Tool { return c.tool }

// Inputs returns a copy of the current Input State.
func (c *Calculator) Inputs() models.Inputs { return c.inputs.Clone() }

// Result returns the Result State of the last evaluation.
func (c *Calculator) Result() models.Result {
	out := make([]models.Output, len(c.result.Outputs))
	copy(out, c.result.Outputs)
	return models.Result{ToolID: c.result.ToolID, Outputs: out}
}
