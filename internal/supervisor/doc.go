// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package supervisor provides process supervision for Mantra using suture v4.

Long-running services are grouped into three layers so a failure in one
does not take down the others:

	RootSupervisor ("mantra")
	├── DataSupervisor ("data-layer")
	│   └── TrainerService (if recommend.train_interval > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   └── events.Service (if events.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff once FailureThreshold failures
accumulate faster than FailureDecay forgives them. Cancelling the context
passed to Serve stops every layer; services that miss ShutdownTimeout are
listed by UnstoppedServiceReport.

# Usage

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler()), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewTrainerService(orchestrator, trainerCfg, logger))
	tree.AddMessagingService(events.NewService(publisher))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (start, stop, failure, backoff) are written by
sutureslog through the zerolog-backed slog handler.
*/
package supervisor
