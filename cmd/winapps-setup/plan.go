package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/session"
)

func newPlanCmd() *cobra.Command {
	var script bool
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadPipeline()
			if err != nil {
				return err
			}
			sess, outcome := p.Detect()
			if !outcome.OK() {
				return report(cmd, outcome)
			}
			resolved, outcome := p.Plan(sess)
			if !outcome.OK() {
				return report(cmd, outcome)
			}
			out := cmd.OutOrStdout()
			if script {
				_, _ = fmt.Fprintln(out, resolved.Script())
				return nil
			}
			printPlan(cmd, sess, resolved)
			if !resolved.HasBackports() {
				return nil
			}
			preview, err := p.Resolver().BackportsPreview(sess)
			if err != nil {
				return fmt.Errorf(messages.PlanPreviewFailed, err)
			}
			_, _ = fmt.Fprintln(out, messages.PlanBackportsHeader)
			printDiff(cmd, preview)
			return nil
		},
	}
	cmd.Flags().BoolVar(&script, "script", false, messages.PlanFlagScript)
	return cmd
}

// printPlan lists the plan steps in execution order.
func printPlan(cmd *cobra.Command, sess *session.Session, resolved plan.Plan) {
	out := cmd.OutOrStdout()
	identity, _ := sess.Get()
	_, _ = fmt.Fprintf(out, messages.PlanHeaderFmt, identity.Name(), resolved.Family)
	for _, step := range resolved.Steps {
		_, _ = fmt.Fprintf(out, messages.PlanStepFmt, step.Kind, step.Command)
	}
}

// printDiff colors added and removed lines of a unified diff.
func printDiff(cmd *cobra.Command, diff string) {
	out := cmd.OutOrStdout()
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, _ = fmt.Fprintln(out, line)
		case strings.HasPrefix(line, "+"):
			_, _ = fmt.Fprintln(out, color.GreenString(line))
		case strings.HasPrefix(line, "-"):
			_, _ = fmt.Fprintln(out, color.RedString(line))
		default:
			_, _ = fmt.Fprintln(out, line)
		}
	}
}
