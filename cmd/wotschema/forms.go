package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/wotschema/td"
)

type formView struct {
	Thing      string `json:"thing" yaml:"thing"`
	Affordance string `json:"affordance" yaml:"affordance"`
	Kind       string `json:"kind" yaml:"kind"`
	Op         string `json:"op" yaml:"op"`
	Method     string `json:"method" yaml:"method"`
	Target     string `json:"target" yaml:"target"`
	Type       string `json:"contentType" yaml:"contentType"`
}

type formsResult struct {
	Forms  []formView  `json:"forms" yaml:"forms"`
	Issues []issueView `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newFormsCmd(a *app) *cobra.Command {
	var (
		op           string
		semanticType string
	)
	cmd := &cobra.Command{
		Use:   "forms <file.nq>",
		Short: "`forms` lists the form each affordance offers for an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGraph(args[0])
			if err != nil {
				return err
			}
			things, issues := td.ReadAll(g, a.decodeOptions())

			var res formsResult
			add := func(thing td.Thing, kind, name, defaultOp string, af td.Affordance) {
				if semanticType != "" && !af.HasSemanticType(semanticType) {
					return
				}
				want := op
				if want == "" {
					want = defaultOp
				}
				f, ok := af.FirstFormForOperationType(want)
				if !ok {
					return
				}
				res.Forms = append(res.Forms, formView{
					Thing:      thing.Title(),
					Affordance: name,
					Kind:       kind,
					Op:         want,
					Method:     f.MethodOrDefault(want),
					Target:     f.Target(),
					Type:       f.ContentType(),
				})
			}
			for _, t := range things {
				for _, p := range t.Properties() {
					add(t, "property", p.Name(), td.OpReadProperty, p.Affordance)
				}
				for _, ac := range t.Actions() {
					add(t, "action", ac.Name(), td.OpInvokeAction, ac.Affordance)
				}
				for _, e := range t.Events() {
					add(t, "event", e.Name(), td.OpSubscribeEvent, e.Affordance)
				}
			}
			res.Issues = viewIssues(issues)
			a.logger.WithFields(log.Fields{"things": len(things), "forms": len(res.Forms)}).Info("forms listed")
			if err := a.encode(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			return a.finish(cmd, issues)
		},
	}
	cmd.Flags().StringVar(&op, "op", "", "operation type (default: readproperty, invokeaction or subscribeevent by affordance kind)")
	cmd.Flags().StringVar(&semanticType, "type", "", "only affordances annotated with this semantic type IRI")
	return cmd
}
