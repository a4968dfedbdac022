package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and
LELS_* environment variables have been applied.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	})

	return cmd
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	if formatter.JSON() {
		return formatter.Success(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, "cannot render config", err)
	}
	w := formatter.Writer
	if cfg.Source != "" {
		fmt.Fprintf(w, "# source: %s\n", cfg.Source)
	}
	_, err = w.Write(data)
	return err
}
