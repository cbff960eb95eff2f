package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"investor-reporting/internal/common"
)

// stubExtractor records the prompt it was handed and returns a canned reply.
type stubExtractor struct {
	prompt string
	calls  int
	reply  string
	err    error
}

func (s *stubExtractor) Extract(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func writeTemplate(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractHappyPath(t *testing.T) {
	stub := &stubExtractor{reply: `{"arr": 100.5, "number_of_clients": 10}`}
	p := New(writeTemplate(t, "Data: {content}"), stub, nil)

	form, err := p.Extract(context.Background(), []byte("hello"), "q1.txt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if stub.prompt != "Data: hello" {
		t.Errorf("prompt = %q, want %q", stub.prompt, "Data: hello")
	}
	if form.ARR == nil || form.ARR.String() != "100.5" {
		t.Errorf("arr = %v, want 100.5", form.ARR)
	}
	if form.NumberOfClients == nil || *form.NumberOfClients != 10 {
		t.Errorf("number_of_clients = %v, want 10", form.NumberOfClients)
	}
}

func TestExtractEmptyDocumentStillRunsEveryStage(t *testing.T) {
	stub := &stubExtractor{reply: `{}`}
	p := New(writeTemplate(t, "Data: {content}"), stub, nil)

	if _, err := p.Extract(context.Background(), nil, "q1.txt"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("extractor called %d times, want 1 — empty content must not short-circuit", stub.calls)
	}
	if stub.prompt != "Data: " {
		t.Errorf("prompt = %q, want the template with empty content", stub.prompt)
	}
}

func TestExtractTemplateWithoutPlaceholder(t *testing.T) {
	stub := &stubExtractor{reply: `{}`}
	p := New(writeTemplate(t, "No placeholder here"), stub, nil)

	if _, err := p.Extract(context.Background(), []byte("ignored"), "q1.txt"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if stub.prompt != "No placeholder here" {
		t.Errorf("prompt = %q, want the literal template", stub.prompt)
	}
}

func TestExtractErrorKindsStayAttributable(t *testing.T) {
	t.Run("decode error stops before the extractor", func(t *testing.T) {
		stub := &stubExtractor{reply: `{}`}
		p := New(writeTemplate(t, "Data: {content}"), stub, nil)
		_, err := p.Extract(context.Background(), []byte{0xff, 0xfe}, "q1.txt")
		if !errors.Is(err, common.ErrDecode) {
			t.Errorf("err = %v, want ErrDecode", err)
		}
		if stub.calls != 0 {
			t.Errorf("extractor called %d times after normalize failure", stub.calls)
		}
	})

	t.Run("service error passes through unwrapped", func(t *testing.T) {
		stub := &stubExtractor{err: common.WrapError(common.ErrExtractionService, "boom")}
		p := New(writeTemplate(t, "Data: {content}"), stub, nil)
		_, err := p.Extract(context.Background(), []byte("x"), "q1.txt")
		if !errors.Is(err, common.ErrExtractionService) {
			t.Errorf("err = %v, want ErrExtractionService", err)
		}
	})

	t.Run("non-json reply is a validation error", func(t *testing.T) {
		stub := &stubExtractor{reply: "Sorry, I cannot help with that."}
		p := New(writeTemplate(t, "Data: {content}"), stub, nil)
		_, err := p.Extract(context.Background(), []byte("x"), "q1.txt")
		if !errors.Is(err, common.ErrSchemaValidation) {
			t.Errorf("err = %v, want ErrSchemaValidation", err)
		}
	})

	t.Run("empty reply is a validation error", func(t *testing.T) {
		// The invoker maps null content to "", which validation rejects
		// like any other non-JSON input.
		stub := &stubExtractor{reply: ""}
		p := New(writeTemplate(t, "Data: {content}"), stub, nil)
		_, err := p.Extract(context.Background(), []byte("x"), "q1.txt")
		if !errors.Is(err, common.ErrSchemaValidation) {
			t.Errorf("err = %v, want ErrSchemaValidation", err)
		}
	})

	t.Run("missing template surfaces before the extractor", func(t *testing.T) {
		stub := &stubExtractor{reply: `{}`}
		p := New(filepath.Join(t.TempDir(), "nope.txt"), stub, nil)
		if _, err := p.Extract(context.Background(), []byte("x"), "q1.txt"); err == nil {
			t.Error("expected error for missing template")
		}
		if stub.calls != 0 {
			t.Errorf("extractor called %d times after template failure", stub.calls)
		}
	})
}
