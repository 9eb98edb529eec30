package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/plan"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DetectUse,
		Short: messages.DetectShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := loadPipeline()
			if err != nil {
				return err
			}
			sess, outcome := p.Detect()
			if err := report(cmd, outcome); err != nil {
				return err
			}
			identity, _ := sess.Get()
			out := cmd.OutOrStdout()
			printField(out, messages.DetectFieldID, identity.ID)
			printField(out, messages.DetectFieldLike, identity.IDLike)
			printField(out, messages.DetectFieldCode, identity.VersionCodename)
			printField(out, messages.DetectFieldFam, plan.SessionFamily(sess).String())
			return nil
		},
	}
}

func printField(out io.Writer, name, value string) {
	if value == "" {
		value = messages.DetectFieldEmpty
	}
	_, _ = fmt.Fprintf(out, messages.DetectFieldFmt, name, value)
}
