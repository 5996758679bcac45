// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package services adapts Mantra components to the suture v4 Service
interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
on context cancellation the server is shut down with its own deadline so
in-flight ranking requests can finish.

	server := &http.Server{Addr: ":8080", Handler: router.Setup()}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

TrainerService refits the neighbour model used for item recommendations,
actor similarity and score prediction on a fixed interval:

	tree.AddDataService(services.NewTrainerService(orchestrator, services.TrainerConfig{
	    TrainOnStartup: true,
	    Interval:       15 * time.Minute,
	}, logging.WithComponent("trainer")))

The flag event publisher is supervised through events.Service, which lives
next to the publisher it closes.

# Errors

Returning an error from Serve makes suture restart the service with
backoff. Returning ctx.Err() after cancellation is a clean stop.
*/
package services
