package commands

import (
	"fmt"

	"github.com/penwyp/go-campus-client/internal/core/checksum"
	"github.com/penwyp/go-campus-client/internal/util"
	"github.com/spf13/cobra"
)

func newChecksumCmd(opts *cliOptions) *cobra.Command {
	var (
		variant string
		input   string
		slot    string
	)

	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Debug command to print a request signature",
		Long: `Computes a K, Y or A signature for the given input without calling the backend.

K signs --input (roll number or other identifier) with --campus, Y signs --input as a username
with --campus, and A signs --input alone. The current hour slot is used unless --slot is given.`,
		Hidden: true, // Hidden from help
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := checksum.ParseVariant(variant)
			if err != nil {
				return err
			}

			cfg, err := opts.setup()
			if err != nil {
				return err
			}
			if slot == "" {
				slot = checksum.TimestampSlot(util.GetTimeProvider().Now())
			}

			var sig string
			switch v {
			case checksum.VariantK:
				sig = checksum.SignK(cfg.Secrets, input, opts.ids.campus, slot)
			case checksum.VariantY:
				sig = checksum.SignY(cfg.Secrets, input, opts.ids.campus, slot)
			case checksum.VariantA:
				sig = checksum.SignA(cfg.Secrets, input, slot)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "variant:  %s\n", v)
			fmt.Fprintf(out, "slot:     %s\n", slot)
			fmt.Fprintf(out, "checksum: %s\n", sig)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "k",
		"Signature variant (k, y, a)")
	cmd.Flags().StringVar(&input, "input", "",
		"Identifier, username or parameter to sign")
	cmd.Flags().StringVar(&slot, "slot", "",
		`Explicit timestamp slot (e.g., "18/10/2026 14:00")`)

	return cmd
}
