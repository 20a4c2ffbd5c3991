// Package scheduler ejecuta el job nocturno de agregación: reconstruye los
// resúmenes de consumo del día anterior para todas las unidades activas.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/pkg/config"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron      *cron.Cron
	summaryUC *report.ConsumptionSummaryUseCase
	cfg       config.SchedulerConfig
	log       *logger.Logger
}

// New construye el scheduler. El parser por defecto de cron/v3 usa la
// expresión estándar de 5 campos (min, hora, día, mes, día-semana).
func New(cfg config.SchedulerConfig, summaryUC *report.ConsumptionSummaryUseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		summaryUC: summaryUC,
		cfg:       cfg,
		log:       log,
	}
}

// Start registra y arranca las tareas. No hace nada si está deshabilitado.
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		s.log.Info().Msg("scheduler deshabilitado")
		return
	}
	if _, err := s.cron.AddFunc(s.cfg.SummaryCron, s.rebuildYesterday); err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.SummaryCron).Msg("no se pudo programar el rebuild de resúmenes")
		return
	}
	s.log.Info().Str("cron", s.cfg.SummaryCron).Msg("scheduler iniciado")
	s.cron.Start()
}

// Stop detiene el scheduler y espera las tareas en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

// rebuildYesterday reconstruye los resúmenes del día calendario anterior.
// El job solo lee el ledger y reescribe el caché; es seguro reejecutarlo.
func (s *Scheduler) rebuildYesterday() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	day := time.Now().UTC().AddDate(0, 0, -1)
	s.log.Info().Time("day", day).Msg("reconstruyendo resúmenes de consumo")
	if err := s.summaryUC.RebuildDay(ctx, day); err != nil {
		s.log.Error().Err(err).Msg("rebuild nocturno de resúmenes falló")
		return
	}
	s.log.Info().Msg("resúmenes de consumo reconstruidos")
}
