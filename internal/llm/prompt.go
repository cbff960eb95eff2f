package llm

import (
	"fmt"
	"os"
	"strings"
)

// ContentPlaceholder is the single substitution token a template carries.
const ContentPlaceholder = "{content}"

// LoadTemplate reads the prompt template file. It is called fresh on every
// extraction, never cached, so external edits take effect without a restart.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	return string(b), nil
}

// BuildPrompt fills the {content} placeholder with the normalized document
// text. No escaping, no recursion. A template without the placeholder comes
// back verbatim; callers rely on that no-op, so it is not an error.
func BuildPrompt(template, content string) string {
	return strings.ReplaceAll(template, ContentPlaceholder, content)
}
