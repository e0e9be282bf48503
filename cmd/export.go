package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/formdeck/formdeck/internal/demoform"
	"github.com/formdeck/formdeck/internal/formpath"
	"github.com/formdeck/formdeck/internal/formtree"
	"github.com/formdeck/formdeck/internal/registry"
	"github.com/formdeck/formdeck/internal/suggest"
)

var (
	exportFormat string
	exportPath   string
	exportEvents bool
	exportList   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print a snapshot of the assembled demo form",
	Long: `Assemble every demo fragment into one form tree and print a snapshot
of it. Useful for seeing what the playground builds without running it.

With --events the registration event history is printed instead; with
--path only the subtree at that dotted path is exported.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml",
		"output format: yaml or json")
	exportCmd.Flags().StringVarP(&exportPath, "path", "p", "",
		"export only the subtree at this dotted path")
	exportCmd.Flags().BoolVar(&exportEvents, "events", false,
		"print the registration event history instead of the tree")
	exportCmd.Flags().BoolVar(&exportList, "list", false,
		"list the available fragment names and exit")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if exportList {
		for _, frag := range demoform.Catalog() {
			fmt.Fprintf(out, "%-14s %s\n", frag.Name, frag.Path())
		}
		return nil
	}

	reg := registry.New()
	if err := demoform.MountAll(reg); err != nil {
		return fmt.Errorf("assembling demo form: %w", err)
	}

	if exportEvents {
		for _, evt := range reg.History() {
			fmt.Fprintf(out, "%3d  %-7s  %s\n", evt.Seq, evt.Kind, evt.Path)
		}
		return nil
	}

	node, err := exportNode(reg, exportPath)
	if err != nil {
		return err
	}

	rendered, err := renderSnapshot(formtree.Take(node), exportFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// exportNode resolves the node to export: the root form, or the subtree
// at path. A miss is answered with the nearest registered paths.
func exportNode(reg *registry.Registry, path string) (formtree.Node, error) {
	if path == "" {
		return reg.Form(), nil
	}

	node, ok := reg.Control(formpath.Parse(path))
	if ok {
		return node, nil
	}

	var candidates []string
	for _, p := range formtree.Paths(reg.Form()) {
		candidates = append(candidates, p.String())
	}
	if nearest := suggest.Closest(path, candidates, 3); len(nearest) > 0 {
		return nil, fmt.Errorf("path %q not found; did you mean %s?",
			path, strings.Join(nearest, ", "))
	}
	return nil, fmt.Errorf("path %q not found", path)
}

// renderSnapshot serializes a snapshot in the requested format. Group
// children keep their registration order in both formats.
func renderSnapshot(snap *formtree.Snapshot, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(snap)
		if err != nil {
			return "", fmt.Errorf("marshaling snapshot: %w", err)
		}
		return string(data), nil

	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling snapshot: %w", err)
		}
		return string(data) + "\n", nil

	default:
		return "", fmt.Errorf("unknown format %q (expected yaml or json)", format)
	}
}
