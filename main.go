package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rdalreport/internal/observability/metrics"
	"rdalreport/internal/reporting/application"
	"rdalreport/internal/reporting/domain/classify"
	"rdalreport/internal/reporting/infrastructure/extracts"
	"rdalreport/internal/reporting/infrastructure/postgres"
	"rdalreport/internal/reporting/interfaces"
)

func main() {
	configPath := flag.String("config", "", "path to run configuration yaml (or RDAL_CONFIG)")
	outputPath := flag.String("out", "", "override for the submission artifact path")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := application.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}

	metrics.Init()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Printf("metrics listener: %v", err)
			}
		}()
	}

	var snapshots application.SnapshotStore
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open snapshot db: %v", err)
		}
		defer db.Close()
		snapshots = postgres.NewSnapshotStore(db)
	}

	engine, err := classify.NewEngine(classify.DefaultRuleset())
	if err != nil {
		log.Fatalf("build rule table: %v", err)
	}

	service, err := application.NewPipelineService(cfg, engine, extracts.NewReader(), snapshots, logger)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	started := time.Now()
	records, summary, err := service.Run(context.Background())
	if err != nil {
		metrics.ObserveRun(metrics.ResultError, time.Since(started))
		log.Fatalf("run %s: %v", cfg.RunID(), err)
	}
	metrics.ObserveRun(metrics.ResultSuccess, time.Since(started))

	artifact, err := interfaces.BuildArtifact(records, cfg.ReportingDate, cfg.DateFormat)
	if err != nil {
		log.Fatalf("build artifact: %v", err)
	}
	if err := os.WriteFile(cfg.OutputPath, artifact, 0o644); err != nil {
		log.Fatalf("write artifact: %v", err)
	}
	logger.Printf("wrote %s: %d records (AL=%d OB=%d SP=%d), %d unclassified dropped",
		cfg.OutputPath, len(records), summary.Sections["AL"], summary.Sections["OB"], summary.Sections["SP"], summary.Unclassified)

	if cfg.WorkbookPath != "" {
		exportStarted := time.Now()
		workbook, err := interfaces.BuildInspectionWorkbook(records)
		if err != nil {
			metrics.ObserveExport("xlsx", metrics.ResultError, time.Since(exportStarted))
			log.Fatalf("build workbook: %v", err)
		}
		if err := os.WriteFile(cfg.WorkbookPath, workbook, 0o644); err != nil {
			log.Fatalf("write workbook: %v", err)
		}
		metrics.ObserveExport("xlsx", metrics.ResultSuccess, time.Since(exportStarted))
	}

	if cfg.SummaryPDFPath != "" {
		exportStarted := time.Now()
		summaryPDF, err := interfaces.BuildSummaryPDF(records, cfg.ReportingDate)
		if err != nil {
			metrics.ObserveExport("pdf", metrics.ResultError, time.Since(exportStarted))
			log.Fatalf("build summary pdf: %v", err)
		}
		if err := os.WriteFile(cfg.SummaryPDFPath, summaryPDF, 0o644); err != nil {
			log.Fatalf("write summary pdf: %v", err)
		}
		metrics.ObserveExport("pdf", metrics.ResultSuccess, time.Since(exportStarted))
	}

	if cfg.ReceiptSecret != "" && cfg.ReceiptPath != "" {
		receipt, err := interfaces.BuildReceipt([]byte(cfg.ReceiptSecret), artifact, cfg.ReportingDate, summary.Sections, time.Now())
		if err != nil {
			log.Fatalf("build receipt: %v", err)
		}
		if err := os.WriteFile(cfg.ReceiptPath, []byte(receipt), 0o600); err != nil {
			log.Fatalf("write receipt: %v", err)
		}
	}
}
