// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package metrics provides Prometheus collection for cast operations.

Collector registers counter and histogram vectors for finished casts,
completion attempts, token usage, truncations, and errors, all under a
configurable namespace. It complements the OpenTelemetry
instrumentation: OTLP export follows the request flow, while this
collector feeds a scrape endpoint for fleet dashboards.
*/
package metrics
