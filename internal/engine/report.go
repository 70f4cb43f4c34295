package engine

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/civiltoolbox/toolbox/internal/formula"
	"github.com/civiltoolbox/toolbox/pkg/models"
)

// WriteReport renders a printable plain-text report of a calculator:
// the tool, every input with its unit, and the results in display order.
func WriteReport(w io.Writer, tool models.Tool, inputs models.Inputs, result models.Result) error {
	title := tool.Name
	if title == "" {
		title = tool.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
	if tool.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", tool.Category)
	}
	if tool.Description != "" {
		fmt.Fprintf(&b, "%s\n", tool.Description)
	}

	b.WriteString("\nInputs\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, f := range tool.Fields {
		value := formula.FormatNumber(inputs.Get(f.ID))
		if f.Unit != "" {
			value += " " + f.Unit
		}
		fmt.Fprintf(tw, "  %s\t%s\n", f.Label, value)
	}
	tw.Flush()

	b.WriteString("\nResults\n")
	if len(result.Outputs) == 0 {
		b.WriteString("  (none)\n")
	}
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, o := range result.Outputs {
		fmt.Fprintf(tw, "  %s\t%s\n", o.Label, o.Display)
	}
	tw.Flush()

	_, err := io.WriteString(w, b.String())
	return err
}

// Report renders the calculator's current state.
func (c *Calculator) Report(w io.Writer) error {
	return WriteReport(w, c.tool, c.inputs, c.result)
}
