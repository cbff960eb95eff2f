package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"investor-reporting/internal/common"
)

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildMetricsJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metrics.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("metrics.json")
})

// Validate parses raw JSON text into a FormData instance. The extraction
// service is untrusted input: malformed JSON, unknown keys, and
// type-incoercible values are all rejected rather than coerced, so
// extraction-quality regressions surface instead of being masked.
// Absent and null keys both map to the field's absent state, never to zero.
func Validate(raw []byte) (FormData, error) {
	schema, err := compileSchema()
	if err != nil {
		return FormData{}, fmt.Errorf("compile metrics schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return FormData{}, common.WrapError(common.ErrSchemaValidation, fmt.Sprintf("decode json: %v", err))
	}
	if err := schema.Validate(v); err != nil {
		return FormData{}, common.WrapError(common.ErrSchemaValidation, fmt.Sprintf("json does not match metrics schema: %v", err))
	}

	var out FormData
	if err := json.Unmarshal(raw, &out); err != nil {
		return FormData{}, common.WrapError(common.ErrSchemaValidation, fmt.Sprintf("unmarshal fields: %v", err))
	}
	return out, nil
}
