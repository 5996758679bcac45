// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package logging wraps zerolog with a process-wide logger.

Configuration comes from the logging section of the application config
(MANTRA_LOGGING__LEVEL, MANTRA_LOGGING__FORMAT, or the legacy LOG_LEVEL and
LOG_FORMAT variables). Request handlers attach request and correlation IDs
to the context; Ctx picks them up so log lines from the moderation and
recommendation pipelines can be joined back to the HTTP request.

User-authored text must never be logged in full. Use Preview to attach a
bounded, control-character-free prefix.

The slog adapter lets sutureslog report supervisor events through the same
zerolog stream.
*/
package logging
