package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/app"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
)

var (
	tegConfigID    string
	tegMode        string
	tegLoad        float64
	tegCooling     bool
	tegProtection  bool
	tegConditions  model.ThermalConditions
	tegConstraints teg.Constraints
)

var tegCmd = &cobra.Command{
	Use:   "teg",
	Short: "Thermoelectric generator calculations",
}

var tegPowerCmd = &cobra.Command{
	Use:   "power",
	Short: "Calculate the electrical output of a TEG configuration",
	RunE:  tegPower,
}

var tegOptimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the design space around a TEG configuration",
	RunE:  tegOptimize,
}

func init() {
	for _, c := range []*cobra.Command{tegPowerCmd, tegOptimizeCmd} {
		f := c.Flags()
		f.StringVar(&tegConfigID, "config-id", catalog.DiscBrakeTEG, "TEG configuration id")
		f.Float64Var(&tegConditions.HotSideTemp, "hot", 200, "hot side temperature (°C)")
		f.Float64Var(&tegConditions.ColdSideTemp, "cold", 50, "cold side temperature (°C)")
		f.Float64Var(&tegConditions.AmbientTemp, "ambient", 25, "ambient temperature (°C)")
		f.Float64Var(&tegConditions.HeatFlux, "heat-flux", 5000, "heat flux (W/m²)")
		f.Float64Var(&tegConditions.HotConvection, "hot-convection", 50, "hot side convection coefficient (W/m²K)")
		f.Float64Var(&tegConditions.ColdConvection, "cold-convection", 25, "cold side convection coefficient (W/m²K)")
		f.Float64Var(&tegConditions.AirflowVelocity, "airflow", 15, "airflow velocity (m/s)")
		f.Float64Var(&tegConditions.BrakingDuration, "duration", 5, "braking duration (s)")
		f.Float64Var(&tegConditions.BrakingIntensity, "intensity", 0.7, "braking intensity (0-1)")
	}
	pf := tegPowerCmd.Flags()
	pf.StringVar(&tegMode, "mode", string(teg.MaximumPower), "operating mode: maximum_power, maximum_efficiency or constant_voltage")
	pf.Float64Var(&tegLoad, "load", 0, "load resistance override (Ω)")
	pf.BoolVar(&tegCooling, "cooling", false, "active cooling on the cold side")
	pf.BoolVar(&tegProtection, "protection", true, "enforce the hot side safety ceiling")

	of := tegOptimizeCmd.Flags()
	of.Float64Var(&tegConstraints.MaxFootprint, "max-footprint", 0, "maximum footprint (m²)")
	of.Float64Var(&tegConstraints.MaxHeight, "max-height", 0, "maximum module height (m)")
	of.Float64Var(&tegConstraints.MaxCost, "max-cost", 0, "maximum material cost")
	of.Float64Var(&tegConstraints.MinPower, "min-power", 0, "minimum electrical power (W)")
	of.Float64Var(&tegConstraints.MinEfficiency, "min-efficiency", 0, "minimum efficiency (%)")

	tegCmd.AddCommand(tegPowerCmd, tegOptimizeCmd)
	rootCmd.AddCommand(tegCmd)
}

func conditions() model.ThermalConditions {
	c := tegConditions
	c.AirflowTemp = c.AmbientTemp
	return c
}

func parseOperatingMode(s string) (teg.OperatingMode, error) {
	switch m := teg.OperatingMode(s); m {
	case teg.MaximumPower, teg.MaximumEfficiency, teg.ConstantVoltage:
		return m, nil
	default:
		return "", fmt.Errorf("unknown operating mode %q", s)
	}
}

func tegPower(cmd *cobra.Command, args []string) error {
	mode, err := parseOperatingMode(tegMode)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	core, err := app.NewCore(cfg, nil)
	if err != nil {
		return err
	}
	perf, err := core.Engine.CalculatePower(teg.PowerRequest{
		ConfigID:          tegConfigID,
		Conditions:        conditions(),
		LoadResistance:    tegLoad,
		Mode:              mode,
		CoolingActive:     tegCooling,
		ThermalProtection: tegProtection,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), perf)
}

func tegOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	core, err := app.NewCore(cfg, nil)
	if err != nil {
		return err
	}
	res, err := core.Engine.OptimizeConfiguration(tegConfigID, conditions(), tegConstraints)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}
