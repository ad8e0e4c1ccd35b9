package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestMaterialsAndConfigs(t *testing.T) {
	out, err := execute(t, "materials")
	require.NoError(t, err)
	var materials []model.Material
	require.NoError(t, json.Unmarshal([]byte(out), &materials))
	assert.NotEmpty(t, materials)

	out, err = execute(t, "configs")
	require.NoError(t, err)
	var configs []model.TEGConfiguration
	require.NoError(t, json.Unmarshal([]byte(out), &configs))
	assert.NotEmpty(t, configs)
}

func TestTEGPower(t *testing.T) {
	out, err := execute(t, "teg", "power", "--config-id", catalog.DiscBrakeTEG, "--cooling")
	require.NoError(t, err)
	var perf model.TEGPerformance
	require.NoError(t, json.Unmarshal([]byte(out), &perf))
	assert.InDelta(t, 4.93, perf.ElectricalPower, 0.05)
}

func TestTEGDefaultConfigIsRegistered(t *testing.T) {
	for _, c := range []*cobra.Command{tegPowerCmd, tegOptimizeCmd} {
		def := c.Flags().Lookup("config-id").DefValue
		assert.Equal(t, catalog.DiscBrakeTEG, def)
	}
	core, err := newCatalogCore()
	require.NoError(t, err)
	_, err = core.Configs.Lookup(catalog.DiscBrakeTEG)
	require.NoError(t, err)

	tegConfigID = catalog.DiscBrakeTEG
	out, err := execute(t, "teg", "power")
	require.NoError(t, err)
	var perf model.TEGPerformance
	require.NoError(t, json.Unmarshal([]byte(out), &perf))
	assert.Greater(t, perf.ElectricalPower, 0.0)
}

func TestTEGPowerUnknownMode(t *testing.T) {
	_, err := execute(t, "teg", "power", "--mode", "turbo")
	require.Error(t, err)
	tegMode = string(teg.MaximumPower)
}

func TestTEGOptimize(t *testing.T) {
	out, err := execute(t, "teg", "optimize", "--config-id", catalog.DiscBrakeTEG)
	require.NoError(t, err)
	var res teg.OptimizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 100, res.Iterations)
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "simulate", "-s", "../qa/scenarios/testdata/mountain_descent.yaml")
	require.NoError(t, err)
	var rep struct {
		Scenario string `json:"scenario"`
		Failed   int    `json:"failed"`
		Results  []any  `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "mountain_descent", rep.Scenario)
	assert.Zero(t, rep.Failed)
	assert.Len(t, rep.Results, 3)
}

func seedJournalConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "braking.jsonl")
	store, err := journal.NewJSONLStore(path)
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, active := range []bool{false, true, true} {
		require.NoError(t, store.Append(context.Background(), journal.Record{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			EventID:   "evt-" + string(rune('1'+i)),
			Outputs:   model.IntegratedBrakingOutputs{TEGActive: active},
		}))
	}
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("journal:\n  backend: jsonl\n  path: "+path+"\n"), 0o644))
	t.Cleanup(func() {
		cfgPath = ""
		exportFormat = "csv"
		exportOutput = ""
		exportStart = ""
		exportEnd = ""
		exportTEGActive = ""
	})
	return cfg
}

func TestJournalExportCSV(t *testing.T) {
	cfg := seedJournalConfig(t)
	out, err := execute(t, "-c", cfg, "journal", "export", "--teg-active", "true")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "event_id", rows[0][1])
	assert.Equal(t, "evt-2", rows[1][1])
	assert.Equal(t, "evt-3", rows[2][1])
}

func TestJournalExportJSONToFile(t *testing.T) {
	cfg := seedJournalConfig(t)
	dst := filepath.Join(t.TempDir(), "out.json")
	_, err := execute(t, "-c", cfg, "journal", "export", "-f", "json", "-o", dst, "--end", "2026-03-01T12:01:00Z")
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var recs []journal.Record
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "evt-1", recs[0].EventID)
}

func TestJournalExportBadFlags(t *testing.T) {
	cfg := seedJournalConfig(t)
	_, err := execute(t, "-c", cfg, "journal", "export", "-f", "xml")
	require.Error(t, err)
	exportFormat = "csv"
	_, err = execute(t, "-c", cfg, "journal", "export", "--teg-active", "maybe")
	require.Error(t, err)
}
