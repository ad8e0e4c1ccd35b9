package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/app"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/qa/scenarios"
)

var simulateScenario string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a braking scenario and print the result of every step",
	RunE:  simulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateScenario, "scenario", "s", "", "scenario YAML file")
	_ = simulateCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(simulateCmd)
}

func simulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := scenarios.Load(simulateScenario)
	if err != nil {
		return err
	}
	core, err := app.NewCore(cfg, nil)
	if err != nil {
		return err
	}
	rep, err := scenarios.Run(core.Coordinator, sc)
	if err != nil {
		return err
	}
	out := struct {
		*scenarios.Report
		Diagnostics any `json:"diagnostics"`
	}{rep, core.Coordinator.Diagnostics()}
	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if rep.Failed > 0 {
		return fmt.Errorf("scenario %s: %d step(s) failed their expectations", sc.Name, rep.Failed)
	}
	return nil
}
