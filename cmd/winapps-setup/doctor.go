package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/config"
	"github.com/winapps-org/winapps-setup/internal/doctor"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/setup"
	"github.com/winapps-org/winapps-setup/internal/terminal"
	"github.com/winapps-org/winapps-setup/internal/update"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, messages.DoctorHealthCheck)

			// A broken config file is reported; the remaining checks use the defaults.
			cfg, source, cfgErr := config.Load(getenv)
			if cfgErr != nil {
				var err error
				if cfg, err = config.LoadTemplateConfig(); err != nil {
					return err
				}
			}
			p, err := setup.New(cfg, pipelineDeps)
			if err != nil {
				return err
			}

			results := doctor.Run(cmd.Context(), doctor.Options{
				ConfigSource: source,
				ConfigErr:    cfgErr,
				Descriptor:   cfg.Host.Descriptor,
				Identity:     identitySystem(),
				Resolver:     p.Resolver(),
				Locator:      p.Locator(),
				LookPath:     lookPath,
				HasDisplay:   terminal.HasDisplay(getenv),
				Version:      Version,
				CheckUpdate:  updateCheck(),
			})
			for _, r := range results {
				printResult(out, r)
			}

			if doctor.HasFailure(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

// updateCheck returns nil when release lookups are disabled.
func updateCheck() doctor.UpdateFunc {
	if strings.TrimSpace(getenv(update.EnvNoNetwork)) != "" {
		return nil
	}
	return checkForUpdate
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		switch {
		case i == 0:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
		case line == "":
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
		default:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
		}
	}
}
