package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/colresize/internal/config"
	"github.com/oakwood-commons/colresize/pkg/logger"
	"github.com/oakwood-commons/colresize/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print colresize version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\nbuilt: %s\n", v.Commit, v.BuildTime)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	Long: `Print the configuration colresize runs with: the built-in defaults
overlaid with the file from --config-file, $XDG_CONFIG_HOME/colresize/config.yaml
or ~/.config/colresize/config.yaml. Use --defaults for the built-in file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configDefaults {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		path := config.ResolvePath(configFile)
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		logger.FromContext(rootCtx).V(1).Info("config resolved", "path", path)
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configDefaults bool

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the built-in default configuration")
}

// cliVersionString is the one-line version for --version and `version`.
func cliVersionString() string {
	return fmt.Sprintf("%s %s (%s)", settings.CliBinaryName, settings.VersionInformation.BuildVersion, runtime.Version())
}
