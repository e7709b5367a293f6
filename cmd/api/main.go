package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"portfolio-insights-go/internal/actionable"
	"portfolio-insights-go/internal/aggregator"
	"portfolio-insights-go/internal/config"
	"portfolio-insights-go/internal/ingest"
	"portfolio-insights-go/internal/logger"
	"portfolio-insights-go/internal/orchestrator"
	"portfolio-insights-go/internal/types"
)

// uploads are small workbooks; cap the multipart memory use
const maxUploadBytes = 32 << 20

func main() {
	cfg := config.Load()

	log := logger.New()
	log.WithField("service", "portfolio-insights-go").Info("starting service")

	orch := orchestrator.New(cfg)

	// warm-start portfolio: preload the configured workbook if present
	var preloaded []*types.CompanyRecord
	if _, err := os.Stat(cfg.DatasetPath); err == nil {
		records, err := ingest.FromFile(cfg.DatasetPath)
		if err != nil {
			log.WithError(err).Warn("preload of configured workbook failed")
		} else {
			preloaded = records
			log.WithField("dataset_path", cfg.DatasetPath).
				WithField("companies", len(records)).
				Info("portfolio workbook preloaded")
		}
	}

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// preloaded portfolio, if any
	mux.HandleFunc("/portfolio", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "portfolio")
		if preloaded == nil {
			reqLog.Warn("no preloaded portfolio")
			http.Error(w, "no portfolio workbook loaded", http.StatusNotFound)
			return
		}
		reqLog.Info("serving preloaded portfolio")
		writeJSON(w, preloaded)
	})

	// ingest an uploaded workbook into canonical records
	mux.HandleFunc("/ingest", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "ingest")
		reqLog.Info("ingest request received")

		records, ok := ingestUpload(w, r)
		if !ok {
			return
		}
		reqLog.WithField("companies", len(records)).Info("ingest finished")
		writeJSON(w, records)
	})

	// ingest + AI recommendations
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		reqLog.Info("analyze request received")

		records, ok := ingestUpload(w, r)
		if !ok {
			return
		}
		start := time.Now()
		analyzed := orch.AnalyzeRecords(r.Context(), records)
		reqLog.WithField("companies", len(analyzed)).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("analysis finished")
		writeJSON(w, analyzed)
	})

	// ingest + portfolio rollup + action card
	mux.HandleFunc("/insights", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "insights")
		reqLog.Info("insights request received")

		records, ok := ingestUpload(w, r)
		if !ok {
			return
		}
		insight := aggregator.Aggregate(records)
		out := struct {
			Insight types.PortfolioInsight `json:"insight"`
			Card    actionable.ActionCard  `json:"action_card"`
		}{insight, actionable.Generate(insight)}
		reqLog.WithField("companies", insight.TotalCompanies).Info("insights finished")
		writeJSON(w, out)
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// ingestUpload reads the multipart "file" field and runs the ingestion
// pipeline, writing the HTTP error itself when something fails.
func ingestUpload(w http.ResponseWriter, r *http.Request) ([]*types.CompanyRecord, bool) {
	reqLog := logger.New().WithRequest(r)
	if r.Method != http.MethodPost {
		http.Error(w, "POST a workbook as multipart field 'file'", http.StatusMethodNotAllowed)
		return nil, false
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		reqLog.WithError(err).Warn("bad multipart upload")
		http.Error(w, "bad multipart upload", http.StatusBadRequest)
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		reqLog.WithError(err).Warn("missing file field")
		http.Error(w, "missing multipart field 'file'", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	records, err := ingest.FromReader(file)
	if err != nil {
		// the pipeline errors carry the user-fixable detail
		reqLog.WithError(err).Warn("ingestion failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}
	return records, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}
