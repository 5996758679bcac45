// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package events

import (
	"context"

	"github.com/tomtom215/mantra/internal/logging"
)

// Service ties the publisher lifetime to a supervisor. Serve blocks until
// the context is cancelled and then closes the publisher.
type Service struct {
	pub *Publisher
}

// NewService wraps pub for supervision.
func NewService(pub *Publisher) *Service {
	return &Service{pub: pub}
}

// Serve implements suture.Service.
func (s *Service) Serve(ctx context.Context) error {
	logging.Info().Str("backend", s.pub.Backend()).Msg("Flag event publisher started")
	<-ctx.Done()
	if err := s.pub.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing flag event publisher")
	}
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *Service) String() string {
	return "flag-event-publisher"
}
