package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalrec/health-api/internal/config"
	"github.com/vitalrec/health-api/internal/repository"
	"github.com/vitalrec/health-api/internal/repository/postgres"
	medicationService "github.com/vitalrec/health-api/internal/service/medication"
	"github.com/vitalrec/health-api/pkg/logger"
)

const scanInterval = time.Minute

var (
	remindersEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medication_reminders_emitted_total",
		Help: "The total number of medication reminders emitted",
	})
	scanErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medication_scan_errors_total",
		Help: "The total number of failed medication scans",
	})
	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "medication_scan_duration_seconds",
		Help:    "Time spent scanning active prescriptions",
		Buckets: prometheus.DefBuckets,
	})
)

// AlertWorker scans active prescriptions and emits a reminder for every dose
// falling due within the next scan interval. Reminders are log entries the
// notification pipeline tails; the worker itself never blocks on delivery.
type AlertWorker struct {
	repo   repository.MedicationRepository
	svc    *medicationService.Service
	logger *logger.Logger
}

func NewAlertWorker(repo repository.MedicationRepository, svc *medicationService.Service, l *logger.Logger) *AlertWorker {
	return &AlertWorker{
		repo:   repo,
		svc:    svc,
		logger: l,
	}
}

func (w *AlertWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx, time.Now())
		}
	}
}

func (w *AlertWorker) scan(ctx context.Context, now time.Time) {
	start := time.Now()
	defer func() {
		scanDuration.Observe(time.Since(start).Seconds())
	}()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	meds, err := w.repo.ListAllActive(ctx, today)
	if err != nil {
		scanErrors.Inc()
		w.logger.Error(err, "failed to list active prescriptions")
		return
	}

	for _, med := range meds {
		dose := w.svc.NextDose(med, now)
		if dose == nil {
			continue
		}
		if dose.NextDose.Sub(now) >= scanInterval {
			continue
		}

		remindersEmitted.Inc()
		w.logger.WithFields(map[string]interface{}{
			"patient_uid": med.PatientUID,
			"medication":  med.Name,
			"dosage":      med.Dosage,
			"due_at":      dose.NextDose.Format("15:04"),
		}).Info("medication dose due")
	}
}

func setupHealthCheck(l *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			l.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	l := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		l.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	medicationRepo := postgres.NewMedicationRepository(db)
	medicationSvc := medicationService.NewService(medicationRepo)

	setupHealthCheck(l)

	worker := NewAlertWorker(medicationRepo, medicationSvc, l)

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Start(ctx)
	l.Info("alert worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	l.Info("alert worker stopped")
}
