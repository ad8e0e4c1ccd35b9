package braking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
)

// Coordinator is the part of the energy recovery coordinator served over HTTP.
type Coordinator interface {
	Status() recovery.SystemStatus
	Diagnostics() recovery.Diagnostics
	History() []recovery.HistoryEntry
	Strategy() recovery.StrategyConfig
	UpdateStrategy(u recovery.StrategyUpdate) (recovery.StrategyConfig, error)
}

// NewStatusHandler returns an HTTP handler exposing the coordinator state via
// GET /api/braking/status.
func NewStatusHandler(c Coordinator, token string) http.Handler {
	return getOnly(token, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Status())
	})
}

// NewDiagnosticsHandler serves GET /api/braking/diagnostics.
func NewDiagnosticsHandler(c Coordinator, token string) http.Handler {
	return getOnly(token, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Diagnostics())
	})
}

// NewHistoryHandler serves GET /api/braking/history. The optional limit
// parameter keeps only the most recent entries.
func NewHistoryHandler(c Coordinator, token string) http.Handler {
	return getOnly(token, func(w http.ResponseWriter, r *http.Request) {
		entries := c.History()
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			if n < len(entries) {
				entries = entries[len(entries)-n:]
			}
		}
		writeJSON(w, http.StatusOK, entries)
	})
}

// NewStrategyHandler serves the recovery strategy: GET returns it, PUT applies
// a partial update and returns the merged strategy. Rejected updates leave the
// strategy unchanged and answer 400.
func NewStrategyHandler(c Coordinator, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, c.Strategy())
		case http.MethodPut, http.MethodPatch:
			var u recovery.StrategyUpdate
			if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			st, err := c.UpdateStrategy(u)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, st)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func getOnly(token string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fn(w, r)
	})
}
