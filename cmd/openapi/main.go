// Command openapi writes the service's API document to a file
package main

import (
	"fmt"
	"os"

	"github.com/evyataryagoni/ipgeo/docs"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:          "openapi",
		Short:        "Dump the API document as YAML or JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := render(docs.SwaggerInfo.ReadDoc(), format)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "API document written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "openapi.yaml", `destination file, "-" for stdout`)
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")

	return cmd
}

// render converts the JSON document to the requested format
func render(doc, format string) ([]byte, error) {
	switch format {
	case "json":
		return []byte(doc), nil
	case "yaml":
		// JSON is valid YAML, so decode into a node tree and re-emit in block style
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
			return nil, fmt.Errorf("parse API document: %w", err)
		}
		resetStyle(&node)
		return yaml.Marshal(&node)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// resetStyle drops the flow style inherited from JSON, keeping quoted scalars quoted
func resetStyle(node *yaml.Node) {
	if node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode {
		node.Style = 0
	}
	for _, child := range node.Content {
		resetStyle(child)
	}
}
