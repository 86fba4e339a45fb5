package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
	"github.com/sells-group/proposal-cli/internal/pipeline"
)

var servePort int

// runState tracks one async proposal run.
type runState struct {
	pipeline *pipeline.Pipeline
	mu       sync.Mutex
	result   *pipeline.Result
	err      error
}

// runRegistry holds in-flight and finished runs keyed by run ID.
type runRegistry struct {
	mu   sync.Mutex
	runs map[string]*runState
}

func newRunRegistry() *runRegistry {
	return &runRegistry{runs: map[string]*runState{}}
}

func (r *runRegistry) add(id string, state *runState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = state
}

func (r *runRegistry) get(id string) (*runState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.runs[id]
	return state, ok
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the proposal HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		registry := newRunRegistry()
		router := newRouter(ctx, env, registry)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter wires the API routes. Runs execute asynchronously against the
// server's lifetime context so a closed client connection does not abort
// them.
func newRouter(ctx context.Context, env *pipelineEnv, registry *runRegistry) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/proposals", func(w http.ResponseWriter, req *http.Request) {
		var form model.ProposalForm
		if err := json.NewDecoder(req.Body).Decode(&form); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		analysisReq, err := model.BuildRequest(form)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		id := uuid.NewString()
		state := &runState{pipeline: env.newRun()}
		registry.add(id, state)

		go func() {
			result, err := state.pipeline.Run(ctx, analysisReq)
			state.mu.Lock()
			state.result = result
			state.err = err
			state.mu.Unlock()
			if err != nil {
				zap.L().Error("proposal run failed",
					zap.String("id", id),
					zap.Error(err))
				return
			}
			zap.L().Info("proposal run complete",
				zap.String("id", id),
				zap.String("run_id", result.RunID))
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": "accepted"})
	})

	r.Get("/api/progress/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		state, ok := registry.get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown run id"})
			return
		}

		state.mu.Lock()
		result := state.result
		runErr := state.err
		state.mu.Unlock()

		resp := struct {
			ID       string                 `json:"id"`
			Progress model.ProgressSnapshot `json:"progress"`
			Document string                 `json:"document,omitempty"`
			Error    string                 `json:"error,omitempty"`
		}{
			ID:       id,
			Progress: state.pipeline.Monitor().Snapshot(),
		}
		if result != nil {
			resp.Document = result.Document
		}
		if runErr != nil {
			resp.Error = runErr.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
