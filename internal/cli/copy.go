package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"record-copier/copier"
	"record-copier/internal/config"
	"record-copier/options"
	"record-copier/store/memory"
)

var errRootNotFound = errors.New("root record not found in fixture")

type copyFlags struct {
	fixture     string
	root        string
	deep        bool
	optionsFile string
	diff        bool
	logLevel    string
}

func newCopyCmd() *cobra.Command {
	var flags copyFlags

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy one fixture record and print the clone",
		Example: `  record-copier copy --fixture blog.yaml --root post1
  record-copier copy --fixture blog.yaml --root post1 --deep=false --diff
  record-copier copy --fixture blog.yaml --root post1 --options copy.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("deep") {
				cfg.Deep = flags.deep
			}
			if flags.optionsFile != "" {
				cfg.OptionsFile = flags.optionsFile
			}
			if flags.logLevel != "" {
				cfg.LogLevel = flags.logLevel
			}

			return runCopy(cmd, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.fixture, "fixture", "f", "", "Fixture file with models and records (required)")
	cmd.Flags().StringVarP(&flags.root, "root", "r", "", "Key of the fixture record to copy (required)")
	cmd.Flags().BoolVar(&flags.deep, "deep", true, "Clone related records instead of linking them")
	cmd.Flags().StringVarP(&flags.optionsFile, "options", "o", "", "YAML file with per-type copy options")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "Print a unified diff of the source and clone dumps")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	_ = cmd.MarkFlagRequired("fixture")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func runCopy(cmd *cobra.Command, cfg *config.Config, flags copyFlags) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))

	store, byKey, err := memory.LoadFixture(flags.fixture)
	if err != nil {
		return err
	}

	root, ok := byKey[flags.root]
	if !ok {
		return fmt.Errorf("%w: %s", errRootNotFound, flags.root)
	}

	copierOpts := []copier.Option{copier.WithLogger(logger)}
	if cfg.OptionsFile != "" {
		file, err := loadOptions(cfg.OptionsFile, store.Schema(), logger)
		if err != nil {
			return err
		}
		copierOpts = append(copierOpts, copier.WithTypeOptions(file.Types))
	}

	c := copier.New(store, store.Schema(), nil, copierOpts...)

	logger.Debug("copying record", "root", flags.root, "model", root.ModelName(), "deep", cfg.Deep)

	clone, err := c.Copy(cmd.Context(), root, cfg.Deep, nil)
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", flags.root, err)
	}

	cloneRec, ok := clone.(*memory.Record)
	if !ok {
		return fmt.Errorf("clone of %s is %T, not a store record", flags.root, clone)
	}

	logger.Info("copied record", "root", flags.root, "clone", cloneRec.Identity(), "records", store.Len())

	cloneYAML, err := memory.DumpYAML(cloneRec)
	if err != nil {
		return fmt.Errorf("failed to dump clone: %w", err)
	}

	out := cmd.OutOrStdout()
	if !flags.diff {
		_, err = out.Write(cloneYAML)
		return err
	}

	sourceYAML, err := memory.DumpYAML(root)
	if err != nil {
		return fmt.Errorf("failed to dump source: %w", err)
	}

	return writeDiff(out, flags.root, sourceYAML, cloneYAML)
}

// loadOptions loads an options file and rejects it when it does not fit the schema.
func loadOptions(path string, catalog options.Catalog, logger *slog.Logger) (*options.File, error) {
	file, err := options.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res := options.Validate(file, catalog)
	for _, d := range res.Warnings {
		logger.Warn("suspicious copy option", "options", path, "diagnostic", d.String())
	}

	if err := res.Error(); err != nil {
		return nil, fmt.Errorf("invalid options file %s: %w", path, err)
	}

	return file, nil
}

func writeDiff(w io.Writer, key string, source, clone []byte) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(source)),
		B:        difflib.SplitLines(string(clone)),
		FromFile: key + " (source)",
		ToFile:   key + " (clone)",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("failed to diff: %w", err)
	}

	if text == "" {
		_, err = fmt.Fprintln(w, "no differences")
		return err
	}

	if useColor(w) {
		text = colorizeDiff(text)
	}

	_, err = io.WriteString(w, text)

	return err
}
