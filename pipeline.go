package promptcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/promptcast/internal/ctxkeys"
	"github.com/BaSui01/promptcast/llm"
	"github.com/BaSui01/promptcast/llm/observability"
	"github.com/BaSui01/promptcast/llm/retry"
	"github.com/BaSui01/promptcast/llm/tokenizer"
	"github.com/BaSui01/promptcast/prompt"
	"github.com/BaSui01/promptcast/types"
)

// castOutcome is what one completion round hands to the decode step.
type castOutcome struct {
	arguments json.RawMessage
	content   string
	usage     llm.Usage
}

// runCast drives one instrumented cast: request assembly, completion under
// the retry policy, and the caller's decode step. decode reports whether
// the answer was truncated, for metrics.
//
// Decode failures are terminal. The retry loop wraps only the completion
// call; an answer that fails to parse or validate is never re-requested.
func (c *Caster) runCast(ctx context.Context, operation string, preq *prompt.Request, model string, decode func(*castOutcome) (bool, error)) error {
	toolShaped := preq.Parameters != nil
	if toolShaped && !c.provider.SupportsNativeFunctionCalling() {
		return types.NewErrorf(types.ErrPrecondition,
			"provider %q does not support native function calling", c.provider.Name())
	}

	traceID, ok := ctxkeys.TraceID(ctx)
	if !ok {
		traceID = uuid.New().String()
	}
	req := &llm.Request{
		TraceID:     traceID,
		Model:       model,
		Messages:    preq.Messages(),
		Temperature: 0,
	}
	if toolShaped {
		tool, err := preq.Tool()
		if err != nil {
			return err
		}
		req.Tools = []types.ToolSchema{tool}
		req.ToolChoice = llm.ForceTool(preq.FunctionName)
	}

	attrs := observability.CastAttrs{
		Operation: operation,
		Provider:  c.provider.Name(),
		Model:     model,
		TraceID:   req.TraceID,
	}
	ctx, span := c.obs.StartCast(ctx, attrs)
	started := time.Now()

	policy := c.policy
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, delay time.Duration, err error) {
			c.logger.Debug("retrying completion",
				zap.String("operation", operation),
				zap.String("trace_id", req.TraceID),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
		}
	}

	var attempts int
	resp, err := retry.Do(ctx, policy, func(ctx context.Context) (*llm.Response, error) {
		attempts++
		resp, err := c.provider.Completion(ctx, req)
		if err != nil {
			return nil, err
		}
		if toolShaped && resp.FirstToolCall() == nil {
			// Treated like any other malformed transport answer: the
			// attempt failed and the budget decides whether to retry.
			return nil, types.NewError(types.ErrUpstream, "model returned no tool call").
				WithProvider(c.provider.Name())
		}
		return resp, nil
	})

	var truncated bool
	if err == nil {
		out := &castOutcome{usage: resp.Usage}
		if toolShaped {
			out.arguments = resp.FirstToolCall().Arguments
		} else {
			out.content = resp.Content()
		}
		c.fillUsage(out, req, model)
		truncated, err = decode(out)
		c.finish(ctx, span, attrs, started, attempts, out.usage, truncated, err)
		return err
	}

	c.finish(ctx, span, attrs, started, attempts, llm.Usage{}, false, err)
	return err
}

// fillUsage estimates token usage locally when the provider reported none.
func (c *Caster) fillUsage(out *castOutcome, req *llm.Request, model string) {
	if out.usage.TotalTokens > 0 {
		return
	}
	tok := tokenizer.ForModel(model)
	if n, err := tok.CountMessages(req.Messages); err == nil {
		out.usage.PromptTokens = n
	}
	answer := out.content
	if len(out.arguments) > 0 {
		answer = string(out.arguments)
	}
	if n, err := tok.CountTokens(answer); err == nil {
		out.usage.CompletionTokens = n
	}
	out.usage.TotalTokens = out.usage.PromptTokens + out.usage.CompletionTokens
}

// finish records the outcome on every configured sink.
func (c *Caster) finish(ctx context.Context, span trace.Span, attrs observability.CastAttrs, started time.Time, attempts int, usage llm.Usage, truncated bool, err error) {
	duration := time.Since(started)
	status := "ok"
	errorCode := ""
	if err != nil {
		status = "error"
		errorCode = string(types.Code(err))
	}

	c.obs.EndCast(ctx, span, attrs, observability.ResultAttrs{
		Status:           status,
		ErrorCode:        errorCode,
		Attempts:         attempts,
		TokensPrompt:     usage.PromptTokens,
		TokensCompletion: usage.CompletionTokens,
		Truncated:        truncated,
		Duration:         duration,
	})

	if c.collector != nil {
		c.collector.RecordCast(attrs.Operation, attrs.Model, status, duration,
			usage.PromptTokens, usage.CompletionTokens)
		c.collector.RecordAttempts(attrs.Operation, attrs.Model, attempts)
		if errorCode != "" {
			c.collector.RecordError(attrs.Operation, errorCode)
		}
		if truncated {
			c.collector.RecordTruncation(attrs.Operation)
		}
	}

	if err != nil {
		c.logger.Debug("cast failed",
			zap.String("operation", attrs.Operation),
			zap.String("model", attrs.Model),
			zap.String("trace_id", attrs.TraceID),
			zap.Int("attempts", attempts),
			zap.Duration("duration", duration),
			zap.String("code", errorCode))
		return
	}
	c.logger.Debug("cast completed",
		zap.String("operation", attrs.Operation),
		zap.String("model", attrs.Model),
		zap.String("trace_id", attrs.TraceID),
		zap.Int("attempts", attempts),
		zap.Int("tokens", usage.TotalTokens),
		zap.Duration("duration", duration))
}
