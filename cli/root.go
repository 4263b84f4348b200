package cli

import (
	"github.com/mmatt-net/site/config"
	"github.com/mmatt-net/site/utils"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command of the site binary
func NewRootCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:           "site",
		Short:         "mmatt.net",
		Long:          "Personal site: projects, blog posts and comments.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			utils.InitLogger(cfg.LogLevel)
			return nil
		},
	}

	cmd.AddCommand(NewServeCommand(&cfg))
	cmd.AddCommand(NewMigrateCommand(&cfg))
	cmd.AddCommand(NewCopyDataCommand())

	return cmd
}
