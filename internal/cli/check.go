package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"record-copier/options"
	"record-copier/store/memory"
)

var errInvalidOptions = errors.New("options file has errors")

func newCheckCmd() *cobra.Command {
	var fixture, optionsFile string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a copy options file against the fixture models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := memory.LoadFixture(fixture)
			if err != nil {
				return err
			}

			file, err := options.LoadFile(optionsFile)
			if err != nil {
				return err
			}

			res := options.Validate(file, store.Schema())
			out := cmd.OutOrStdout()
			if len(res.All()) == 0 {
				_, err = fmt.Fprintln(out, "ok")
				return err
			}

			if _, err := fmt.Fprint(out, res.Summary()); err != nil {
				return err
			}

			if res.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", errInvalidOptions, len(res.Errors))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&fixture, "fixture", "f", "", "Fixture file with models (required)")
	cmd.Flags().StringVarP(&optionsFile, "options", "o", "", "YAML file with per-type copy options (required)")
	_ = cmd.MarkFlagRequired("fixture")
	_ = cmd.MarkFlagRequired("options")

	return cmd
}
