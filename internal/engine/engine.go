// Package engine evaluates tools and owns the Field/Input Model.
//
// Evaluation is synchronous and pure: a tool's formula runs exactly once per
// call and its outputs are returned untouched, non-finite values included.
// The Input State is only ever built by InitialInputs and replaced by
// Calculator.Edit, so every formula sees a value for each declared field.
package engine

import (
	"github.com/civiltoolbox/toolbox/pkg/models"
)

// Evaluate runs the tool's formula over inputs. A tool without a formula
// yields an empty result.
func Evaluate(tool models.Tool, inputs models.Inputs) models.Result {
	res := models.Result{ToolID: tool.ID, Outputs: []models.Output{}}
	if tool.Formula == nil {
		return res
	}
	if out := tool.Formula.Evaluate(inputs.Clone()); out != nil {
		res.Outputs = out
	}
	return res
}
