// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

// Package prompt assembles completion requests for the five cast shapes:
// boolean, categorize, bounded list, arbitrary schema, and free text.
//
// Each builder produces a Request holding the optional system instruction,
// the user prompt, and the function-call directive; tool-calling shapes
// derive their parameter document through the schema translator. Free text
// is the only shape without a function schema.
package prompt
