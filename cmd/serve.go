package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(env *pipelineEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/templates", func(w http.ResponseWriter, req *http.Request) {
		docTypes := []model.DocumentType{
			model.DocTypeInvestmentMemo,
			model.DocTypeDiligenceReport,
			model.DocTypeMarketAnalysis,
			model.DocTypeCommitteeUpdate,
		}
		if t := req.URL.Query().Get("type"); t != "" {
			docTypes = []model.DocumentType{model.DocumentType(t)}
		}

		var all []model.Template
		for _, dt := range docTypes {
			tmpls, err := env.Catalog.ListByType(req.Context(), dt)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "could not list templates")
				return
			}
			all = append(all, tmpls...)
		}
		respondJSON(w, http.StatusOK, map[string]any{"templates": all})
	})

	r.Post("/generate", func(w http.ResponseWriter, req *http.Request) {
		var genReq model.GenerationRequest
		if err := json.NewDecoder(req.Body).Decode(&genReq); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if genReq.Context.Name == "" {
			respondError(w, http.StatusBadRequest, "context.name is required")
			return
		}
		genReq.Mode = model.ParseMode(string(genReq.Mode))

		result, err := env.Pipeline.Transform(req.Context(), genReq)
		if err != nil {
			zap.L().Error("generation failed",
				zap.String("project", genReq.Context.Name),
				zap.Error(err),
			)
			if eris.Is(err, model.ErrTemplateNotFound) || eris.Is(err, model.ErrNoSuitableTemplate) {
				respondError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "generation failed")
			return
		}
		respondJSON(w, http.StatusOK, result)
	})

	r.Post("/analyze", func(w http.ResponseWriter, req *http.Request) {
		var doc model.WorkProduct
		if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		report, err := env.Pipeline.AnalyzeQuality(&doc)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, report)
	})

	r.Post("/convert", func(w http.ResponseWriter, req *http.Request) {
		var convReq struct {
			Format   model.OutputFormat `json:"format"`
			Document *model.WorkProduct `json:"document"`
		}
		if err := json.NewDecoder(req.Body).Decode(&convReq); err != nil || convReq.Document == nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := env.Pipeline.Convert(req.Context(), convReq.Document, convReq.Format)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, result)
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
