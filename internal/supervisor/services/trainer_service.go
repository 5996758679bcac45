// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ModelTrainer refits a ranking model from the current store contents.
// *recommend.Orchestrator satisfies it.
type ModelTrainer interface {
	Train(ctx context.Context) error
}

// TrainerConfig controls the training schedule.
type TrainerConfig struct {
	// TrainOnStartup fits once before the first tick.
	TrainOnStartup bool

	// Interval between fits. Non-positive uses one hour.
	Interval time.Duration

	// Timeout bounds a single fit. Non-positive uses five minutes.
	Timeout time.Duration
}

// TrainerService refits the neighbour model on a fixed schedule. A failed
// fit is logged and retried on the next tick; the previous model keeps
// serving.
type TrainerService struct {
	trainer ModelTrainer
	config  TrainerConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainerService creates a trainer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(trainer ModelTrainer, cfg TrainerConfig, logger zerolog.Logger) *TrainerService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &TrainerService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "model-trainer").Logger(),
		name:    "model-trainer",
	}
}

// Serve implements suture.Service.
func (s *TrainerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("interval", s.config.Interval).
		Msg("Model trainer starting")

	if s.config.TrainOnStartup {
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Initial training failed, retrying on schedule")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Model trainer stopping")
			return ctx.Err()

		case <-ticker.C:
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled training failed")
			}
		}
	}
}

func (s *TrainerService) train(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.trainer.Train(trainCtx); err != nil {
		return err
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Training complete")
	return nil
}

// String names the service in supervisor events.
func (s *TrainerService) String() string {
	return s.name
}
