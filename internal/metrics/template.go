package metrics

import "strings"

// FieldGuide renders one line per metric, "name: description", in table
// order. The same descriptions back the UI tooltips.
func FieldGuide() string {
	var b strings.Builder
	for _, f := range Fields {
		b.WriteString("- ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// TemplateSkeleton generates a starter prompt template with the {content}
// placeholder and the full field guide. Operators edit the generated file;
// the pipeline re-reads it on every extraction, so edits apply live.
func TemplateSkeleton() string {
	var b strings.Builder
	b.WriteString("You are given the contents of a quarterly business reporting document:\n")
	b.WriteString("\n{content}\n\n")
	b.WriteString("Extract the metrics listed below and return a single JSON object whose keys\n")
	b.WriteString("are exactly the metric names. Rules:\n")
	b.WriteString("- Emit plain JSON numeric literals: no thousands separators, no currency symbols, no units.\n")
	b.WriteString("- Counts must be whole numbers.\n")
	b.WriteString("- Omit any metric the document does not report. Never invent a value.\n")
	b.WriteString("- Do not add keys that are not in the list.\n")
	b.WriteString("\nMetrics:\n")
	b.WriteString(FieldGuide())
	return b.String()
}
