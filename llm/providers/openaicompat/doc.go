// Package openaicompat implements llm.Provider against any endpoint
// speaking the OpenAI Chat Completions wire format.
//
// Hosted OpenAI, Azure deployments, and local gateways such as vLLM or
// Ollama share the same request and response shapes. Instead of
// duplicating HTTP handling, message conversion, and error mapping per
// vendor, bindings embed openaicompat.Provider and only override what
// differs:
//
//   - Provider name and default model
//   - Base URL and endpoint path
//   - Custom headers (if any)
//   - Request hooks for vendor-specific fields
//
// Usage:
//
//	p := openaicompat.New(openaicompat.Config{
//	    ProviderName: "vllm",
//	    APIKey:       cfg.APIKey,
//	    BaseURL:      "http://localhost:8000",
//	    DefaultModel: "qwen3-8b",
//	}, logger)
package openaicompat
