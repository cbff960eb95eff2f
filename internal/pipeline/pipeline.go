package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"investor-reporting/internal/llm"
	"investor-reporting/internal/metrics"
	"investor-reporting/internal/normalize"
)

// Pipeline composes normalize → template → prompt → invoke → validate into
// one call: document bytes + filename in, validated metrics record out.
type Pipeline struct {
	templatePath string
	extractor    llm.Extractor
	log          *slog.Logger
}

func New(templatePath string, extractor llm.Extractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{templatePath: templatePath, extractor: extractor, log: logger}
}

// Extract runs every stage unconditionally — an empty document still builds
// a prompt and still reaches the extraction service. Stage failures
// propagate unchanged, so the error kind stays attributable to its origin.
func (p *Pipeline) Extract(ctx context.Context, data []byte, filename string) (metrics.FormData, error) {
	rid := uuid.New().String()
	start := time.Now()

	p.log.Info("pipeline.extract.start",
		"req_id", rid,
		"filename", filename,
		"bytes", len(data),
		"spreadsheet", normalize.IsSpreadsheet(filename),
	)

	text, err := normalize.Normalize(data, filename)
	if err != nil {
		p.log.Error("pipeline.normalize.failed", "req_id", rid, "filename", filename, "error", err)
		return metrics.FormData{}, err
	}

	// The template is re-read per call so operator edits apply immediately.
	template, err := llm.LoadTemplate(p.templatePath)
	if err != nil {
		p.log.Error("pipeline.template.failed", "req_id", rid, "path", p.templatePath, "error", err)
		return metrics.FormData{}, err
	}
	prompt := llm.BuildPrompt(template, text)

	raw, err := p.extractor.Extract(ctx, prompt)
	if err != nil {
		p.log.Error("pipeline.invoke.failed", "req_id", rid, "error", err)
		return metrics.FormData{}, err
	}

	form, err := metrics.Validate([]byte(raw))
	if err != nil {
		p.log.Error("pipeline.validate.failed", "req_id", rid, "raw_len", len(raw), "error", err)
		return metrics.FormData{}, err
	}

	p.log.Info("pipeline.extract.ok",
		"req_id", rid,
		"filename", filename,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return form, nil
}
