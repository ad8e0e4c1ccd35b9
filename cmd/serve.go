package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/app"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/logger"
)

var serveScenario string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recovery service, replaying a scenario and exporting metrics",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().StringVarP(&serveScenario, "scenario", "s", "", "scenario replayed every replay interval (overrides replay.scenario)")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveScenario != "" {
		cfg.Replay.Scenario = serveScenario
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
