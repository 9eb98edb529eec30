package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/config"
	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/prompt"
	"github.com/winapps-org/winapps-setup/internal/setup"
	"github.com/winapps-org/winapps-setup/internal/terminal"
	"github.com/winapps-org/winapps-setup/internal/ui"
	"github.com/winapps-org/winapps-setup/internal/update"
)

var (
	getenv         = os.Getenv
	lookPath       = exec.LookPath
	isInteractive  = terminal.IsInteractive
	pipelineDeps   = setup.Deps{}
	newPromptUI    = func() prompt.UI { return prompt.NewHuhUI() }
	watchRun       = ui.Watch
	checkForUpdate = update.Check
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.AddCommand(
		newDetectCmd(),
		newPlanCmd(),
		newDoctorCmd(),
		newInstallBrokerCmd(),
		newInstallCmd(),
	)
	return cmd
}

// loadPipeline loads the configuration and builds the setup pipeline.
func loadPipeline() (*setup.Pipeline, *config.Config, error) {
	cfg, _, err := config.Load(getenv)
	if err != nil {
		return nil, nil, err
	}
	p, err := setup.New(cfg, pipelineDeps)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

func identitySystem() hostid.System {
	if pipelineDeps.Identity != nil {
		return pipelineDeps.Identity
	}
	return hostid.RealSystem{}
}

// promptUI returns the confirmation UI for the --yes flag.
func promptUI(cmd *cobra.Command, yes bool) prompt.UI {
	if yes {
		return prompt.AutoUI{Out: cmd.OutOrStdout()}
	}
	return newPromptUI()
}

// report prints a successful outcome and returns a failed one for runMain.
func report(cmd *cobra.Command, outcome setup.Outcome) error {
	if !outcome.OK() {
		return outcome
	}
	if outcome.Message != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(outcome.Message))
	}
	return nil
}
