package main

import (
	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/jsonschema"
	"github.com/reoring/wotschema/schemagraph"
	"github.com/reoring/wotschema/vocab"
)

type decodeView struct {
	Node   string             `json:"node" yaml:"node"`
	Schema *jsonschema.Schema `json:"schema" yaml:"schema"`
	Issues []issueView        `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newDecodeCmd(a *app) *cobra.Command {
	var nodes []string
	cmd := &cobra.Command{
		Use:   "decode <file.nq>",
		Short: "`decode` rebuilds data schemas from an N-Quads graph",
		Long: "`decode` rebuilds data schemas from an N-Quads graph. Without --node every " +
			"schema node that is not nested in another schema is decoded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGraph(args[0])
			if err != nil {
				return err
			}
			dec := schemagraph.NewDecoder(g, a.decodeOptions())

			var targets []quad.Value
			if len(nodes) == 0 {
				targets = dec.Roots()
			}
			for _, n := range nodes {
				targets = append(targets, quad.IRI(vocab.Full(n)))
			}

			var (
				out []decodeView
				all wotschema.Issues
			)
			for _, r := range dec.DecodeAll(targets) {
				out = append(out, decodeView{
					Node:   r.Node.String(),
					Schema: jsonschema.FromDataSchema(r.Schema),
					Issues: viewIssues(r.Issues),
				})
				all = append(all, r.Issues...)
			}
			a.logger.WithField("schemas", len(out)).Info("decode finished")
			if err := a.encode(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return a.finish(cmd, all)
		},
	}
	cmd.Flags().StringSliceVarP(&nodes, "node", "n", nil, "IRI (full or prefixed) of a schema node to decode; repeatable")
	return cmd
}
