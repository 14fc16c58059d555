package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ananya/studydeck/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// request log.
type LoggingProvider struct {
	inner    Provider
	requests store.LLMRequestRepo
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, repo store.LLMRequestRepo) Provider {
	return &LoggingProvider{inner: p, requests: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	op := OperationFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := store.LLMRequestRecord{
		Model:       l.inner.ModelID(),
		Operation:   op,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
		rec.ResponseBody = string(resp.Content)
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Log the request but don't fail generation if logging fails.
	if logErr := l.requests.Append(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
