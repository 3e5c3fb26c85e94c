// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
Package testutil provides shared helpers for promptcast tests.

Context helpers (TestContext, TestContextWithTimeout, CancelledContext)
register cleanup automatically so tests cannot leak contexts. MustJSON
and MustParseJSON shorten test data construction.

Subpackages:

  - testutil/mocks: MockProvider, a scriptable llm.Provider with
    builder-style configuration, error injection, and call recording
  - testutil/fixtures: factories for canned llm.Response values

Usage:

	ctx := testutil.TestContext(t)
	provider := mocks.NewAnswerProvider(`{"value":42}`)
	resp, err := provider.Completion(ctx, req)
	require.NoError(t, err)
*/
package testutil
