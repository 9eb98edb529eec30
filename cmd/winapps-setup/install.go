package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/prompt"
	"github.com/winapps-org/winapps-setup/internal/ui"
)

func newInstallCmd() *cobra.Command {
	var yes, noTUI bool
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
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
			printPlan(cmd, sess, resolved)

			confirmed := false
			if err := promptUI(cmd, yes).Confirm(messages.InstallConfirmTitle, resolved.Script(), &confirmed); err != nil {
				if !errors.Is(err, prompt.ErrCancelled) {
					return err
				}
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.InstallDeclined)
				return nil
			}

			run, outcome := p.StartInstall(cmd.Context(), sess)
			if run == nil {
				return report(cmd, outcome)
			}
			if !outcome.OK() {
				return report(cmd, p.Complete(run, outcome))
			}

			identity, _ := sess.Get()
			var waitErr error
			if !noTUI && isInteractive() {
				_, waitErr = watchRun(cmd.Context(), run, fmt.Sprintf(messages.InstallWatchTitleFmt, identity.Name()))
			} else {
				_, waitErr = ui.Stream(cmd.Context(), cmd.OutOrStdout(), run)
			}
			return report(cmd, p.Complete(run, waitErr))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, messages.InstallFlagNoTUI)
	return cmd
}
