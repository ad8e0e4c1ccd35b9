package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

func sampleRecords() []journal.Record {
	return []journal.Record{{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventID:   "evt-1",
		Inputs:    model.IntegratedBrakingInputs{VehicleSpeed: 60, BrakingIntensity: 0.5, BrakeTemperature: 180},
		Outputs: model.IntegratedBrakingOutputs{
			RegenerativePower:   116807.5,
			TEGPower:            1.5,
			TotalRecoveredPower: 116809,
			TEGActive:           true,
			TEGConfigID:         "rotor_integrated",
			SystemEfficiency:    44.1,
		},
		BrakingStatus: "active",
		TEGStatus:     "active",
		ThermalStatus: "active_cooling",
	}}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"2026-03-01T12:00:00Z", "evt-1", "60", "0.5", "180",
		"116807.5", "1.5", "116809", "true", "rotor_integrated",
		"44.1", "active", "active", "active_cooling",
	}, rows[1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))
	var out []journal.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "evt-1", out[0].EventID)
	assert.True(t, out[0].Outputs.TEGActive)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
