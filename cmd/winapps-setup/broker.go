package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/prompt"
)

func newInstallBrokerCmd() *cobra.Command {
	var check, yes bool
	cmd := &cobra.Command{
		Use:   messages.InstallBrokerUse,
		Short: messages.InstallBrokerShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadPipeline()
			if err != nil {
				return err
			}
			if check {
				return report(cmd, p.RecheckBroker(cmd.Context()))
			}
			if _, outcome := p.CheckBroker(cmd.Context()); outcome.OK() {
				return report(cmd, outcome)
			}

			sess, outcome := p.Detect()
			if !outcome.OK() {
				return report(cmd, outcome)
			}
			command, outcome := p.BrokerCommand(sess)
			if !outcome.OK() {
				return report(cmd, outcome)
			}
			confirmed := false
			description := fmt.Sprintf(messages.InstallBrokerConfirmFmt, command)
			if err := promptUI(cmd, yes).Confirm(messages.InstallBrokerConfirmTitle, description, &confirmed); err != nil {
				if !errors.Is(err, prompt.ErrCancelled) {
					return err
				}
			}
			if !confirmed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.InstallDeclined)
				return nil
			}
			return report(cmd, p.InstallBroker(cmd.Context(), sess))
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, messages.InstallBrokerFlagCheck)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}
