package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/app"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the thermoelectric material catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		core, err := newCatalogCore()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), core.Materials.List())
	},
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the TEG configuration catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		core, err := newCatalogCore()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), core.Configs.List())
	},
}

func newCatalogCore() (*app.Core, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewCore(cfg, nil)
}

func init() {
	rootCmd.AddCommand(materialsCmd, configsCmd)
}
