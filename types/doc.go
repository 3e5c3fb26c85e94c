// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package types provides the core types shared across promptcast.

This package has ZERO dependencies on other promptcast packages to avoid
circular imports. All other packages should import types from here.

# Main types

  - Descriptor — closed tagged variant describing an expected output shape
    (string/number/boolean primitive, string enum, array, object)
  - Message / Role / ToolCall — conversation messages exchanged with a
    completion provider
  - ToolSchema — a function-calling tool declaration sent to the provider
  - Error / ErrorCode — structured errors with a stable code taxonomy
    (precondition, upstream, decode, validation, cardinality)
*/
package types
