package braking

import (
	"context"
	"net/http"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/logger"
)

// NewMux registers every braking endpoint. A nil store omits the journal.
func NewMux(c Coordinator, store journal.Store, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/braking/status", NewStatusHandler(c, token))
	mux.Handle("/api/braking/diagnostics", NewDiagnosticsHandler(c, token))
	mux.Handle("/api/braking/history", NewHistoryHandler(c, token))
	mux.Handle("/api/braking/strategy", NewStrategyHandler(c, token))
	if store != nil {
		mux.Handle("/api/braking/journal", NewJournalHandler(store, token))
	}
	return mux
}

// Serve runs the HTTP API on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	log := logger.New("api-server")
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving braking API on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
