package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
)

// Header lists the CSV columns written by WriteCSV.
var Header = []string{
	"timestamp", "event_id", "vehicle_speed", "braking_intensity", "brake_temperature",
	"regenerative_power", "teg_power", "total_recovered_power", "teg_active", "teg_config_id",
	"system_efficiency", "braking_status", "teg_status", "thermal_status",
}

// WriteJSON writes the journal records to w as a JSON array.
func WriteJSON(w io.Writer, records []journal.Record) error {
	if records == nil {
		records = []journal.Record{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes one row per journal record to w, preceded by Header.
func WriteCSV(w io.Writer, records []journal.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.Timestamp.Format(time.RFC3339),
			r.EventID,
			formatFloat(r.Inputs.VehicleSpeed),
			formatFloat(r.Inputs.BrakingIntensity),
			formatFloat(r.Inputs.BrakeTemperature),
			formatFloat(r.Outputs.RegenerativePower),
			formatFloat(r.Outputs.TEGPower),
			formatFloat(r.Outputs.TotalRecoveredPower),
			strconv.FormatBool(r.Outputs.TEGActive),
			r.Outputs.TEGConfigID,
			formatFloat(r.Outputs.SystemEfficiency),
			r.BrakingStatus,
			r.TEGStatus,
			r.ThermalStatus,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
