package llm

import "context"

// Extractor is the interface the pipeline depends on: built prompt in, raw
// JSON text out. Implementations perform exactly one call, no retries.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (string, error)
}
