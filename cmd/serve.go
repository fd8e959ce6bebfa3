package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rigsight/gaslog-cli/internal/model"
	"github.com/rigsight/gaslog-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the classification HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
		})

		mux.HandleFunc("POST /classify", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Samples []model.Sample `json:"samples"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if len(req.Samples) == 0 {
				http.Error(w, `{"error":"samples are required"}`, http.StatusBadRequest)
				return
			}

			results, err := pipeline.RunWells(r.Context(), req.Samples, cfg.Pipeline, cfg.Batch.MaxConcurrentWells)
			if err != nil {
				zap.L().Error("serve: classify failed", zap.Error(err))
				http.Error(w, `{"error":"classification failed"}`, http.StatusUnprocessableEntity)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(struct { //nolint:errcheck
				Results []model.Result    `json:"results"`
				Summary *model.RunSummary `json:"summary"`
			}{results, model.SummarizeResults(results)})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("serve: shutting down")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("serve: starting", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
