// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package schema derives function-parameter documents from type descriptors and
validates model responses against them.

# Overview

The completion endpoint's structured-output mechanism accepts a JSON-schema
document describing the arguments the model must produce. This package owns
both directions of that contract: Translate turns a types.Descriptor into the
wire document (wrapping non-object roots in a synthetic {value: T} envelope),
and Decode parses, validates, and unwraps what the model sent back.

# Main types

  - Document — the JSON-schema-shaped function-parameters document
  - Translate — descriptor → (Document, wrapped) pure translation
  - Validate — fail-fast structural validation with field paths
  - Decode / DecodeStringList — parse, validate, unwrap, cardinality policy
  - DescriptorFor / DescriptorOf — reflection-derived descriptors for Go types

# Typical usage

	doc, wrapped, _ := schema.Translate(types.NewArray(types.NewEnum("a", "b")))
	raw := []byte(`{"value":["a"]}`)
	v, _ := schema.Decode(raw, doc, wrapped)

Array count bounds (minItems/maxItems) ride the document as generation
guidance only; Decode enforces them as an explicit cardinality policy rather
than as validation failures.
*/
package schema
