package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/internal/config"
	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/civiltoolbox/toolbox/pkg/server"

	"github.com/spf13/cobra"
)

var (
	toolsQuery    string
	toolsCategory string
	calcSets      []string
)

// toolsCmd prints the catalog, narrowed like the dashboard search box.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List and search the calculator catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		category := models.Category(toolsCategory)
		if category == "" {
			category = models.CategoryAll
		}
		if category != models.CategoryAll && !category.Valid() {
			return fmt.Errorf("unknown category %q", toolsCategory)
		}
		return printTools(cmd.OutOrStdout(), reg.Search(toolsQuery, category))
	},
}

// calcCmd evaluates one tool from its defaults plus --set overrides.
var calcCmd = &cobra.Command{
	Use:   "calc <tool-id>",
	Short: "Evaluate a calculator and print its report",
	Example: `  toolbox calc rebar-weight --set dia=16 --set length=12
  toolbox calc emi-calculator --set rate=9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		tool, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		raw, err := parseSets(tool, calcSets)
		if err != nil {
			return err
		}
		inputs := engine.MergeInputs(tool, raw)
		return engine.WriteReport(cmd.OutOrStdout(), tool, inputs, engine.Evaluate(tool, inputs))
	},
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsQuery, "query", "q", "", "case-insensitive match on name or description")
	toolsCmd.Flags().StringVarP(&toolsCategory, "category", "c", "", "category label, or All")
	calcCmd.Flags().StringArrayVar(&calcSets, "set", nil, "field=value override, repeatable")
}

func loadRegistry() (*catalog.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	setLogLevel(cfg.LogLevel)
	return catalog.Builtin(catalog.WithLocale(server.ParseLocale(cfg.Locale))), nil
}

func printTools(w io.Writer, tools []models.Tool) error {
	if len(tools) == 0 {
		_, err := fmt.Fprintln(w, "No tools match.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
	for _, t := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, t.Category)
	}
	return tw.Flush()
}

// parseSets splits field=value pairs and rejects fields the tool lacks.
func parseSets(tool models.Tool, sets []string) (map[string]string, error) {
	raw := make(map[string]string, len(sets))
	for _, s := range sets {
		id, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want field=value", s)
		}
		id = strings.TrimSpace(id)
		if _, found := tool.Field(id); !found {
			return nil, fmt.Errorf("%s has no field %q (fields: %s)", tool.ID, id, fieldIDs(tool))
		}
		raw[id] = value
	}
	return raw, nil
}

func fieldIDs(tool models.Tool) string {
	ids := make([]string, 0, len(tool.Fields))
	for _, f := range tool.Fields {
		ids = append(ids, f.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
