// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package observability instruments cast operations with OpenTelemetry.

Metrics wraps a tracer and a meter obtained from the global
OpenTelemetry providers. Each cast produces one span covering the
full pipeline (prompt build, completion attempts, decode) plus a set
of counters and histograms:

  - cast.total: completed casts by operation, model and status.
  - cast.attempt.total: completion attempts, including retries.
  - cast.error.total: failed casts by error code.
  - cast.truncation.total: list answers cut down to their maximum.
  - cast.token.total: prompt and completion tokens reported upstream.
  - cast.duration: end-to-end cast latency in seconds.
  - cast.active: casts currently in flight.

When no telemetry SDK is installed the global providers are no-ops,
so instrumented code pays close to nothing.
*/
package observability
