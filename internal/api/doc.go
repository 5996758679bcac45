// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package api provides the HTTP layer of Mantra.

Router wires a Handler into a chi router with request IDs, access logs,
Prometheus instrumentation, CORS, per-IP rate limiting and gzip.

Routes:

	GET  /api/v1/health/live                          liveness
	GET  /api/v1/health/ready                         readiness (store ping)
	GET  /api/v1/health/performance                   latency percentiles
	POST /api/v1/moderation                           decision and signals
	POST /api/v1/moderation/analyze                   signals only
	GET  /api/v1/actors/{id}/recommendations          ?type=&limit= (type=all by default)
	GET  /api/v1/actors/{id}/similar                  ?limit=
	GET  /api/v1/actors/{id}/items/{item}/score
	GET  /api/v1/trending/posts                       ?hours=&limit=
	GET  /api/v1/trending/hashtags                    ?days=&limit=
	POST /api/v1/creators/{id}/sponsors               sponsor matching
	GET  /api/v1/creators/{id}/collaborations/{other}
	GET  /api/v1/creators/{id}/influence
	GET  /api/v1/fans/{id}/affinity/{creator}
	POST /api/v1/engagement/predict
	GET  /api/v1/search                               ?q=&kind=&limit=
	GET  /metrics                                     Prometheus

Every JSON response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 3}}
	{"status": "error", "error": {"code": "NOT_FOUND", "message": "actor not found: 99"}, ...}

Errors from the ranking layer map to statuses in respondDomainError:
unknown actors are 404, invalid requests are 400, store failures are 500.
Moderation never fails a request because of analysis errors; the engine
returns an unflagged decision marked degraded instead.

Flagged moderation results are published through a FlagNotifier when one
is configured. Publishing failures and throttling are logged and do not
change the response.
*/
package api
