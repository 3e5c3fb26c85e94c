// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package llm defines the completion-provider boundary promptcast depends on.

# Overview

A Provider is the black-box completion capability: given messages plus an
optional function schema, it returns either free-text content or a structured
tool call. The library never talks to a vendor API directly; everything goes
through this interface so tests can substitute testutil/mocks.MockProvider
and callers can bring their own transport.

# Subpackages

  - retry — bounded exponential-backoff invoker driving the completion call
  - providers/openaicompat — shared client for OpenAI-compatible APIs
  - providers/openai — OpenAI binding over openaicompat
  - observability — OpenTelemetry spans and meters around completion calls
  - tokenizer — token estimation when the provider omits usage data
*/
package llm
