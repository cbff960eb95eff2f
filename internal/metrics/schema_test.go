package metrics

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFieldTableMatchesStruct(t *testing.T) {
	if len(Fields) != 29 {
		t.Fatalf("field table has %d entries, want 29", len(Fields))
	}

	raw, err := json.Marshal(FormData{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m) != len(Fields) {
		t.Errorf("struct serializes %d keys, field table declares %d", len(m), len(Fields))
	}
	seen := make(map[string]bool, len(Fields))
	for _, f := range Fields {
		if seen[f.Name] {
			t.Errorf("duplicate field table entry %s", f.Name)
		}
		seen[f.Name] = true
		if _, ok := m[f.Name]; !ok {
			t.Errorf("field table entry %s has no struct counterpart", f.Name)
		}
		if f.Description == "" {
			t.Errorf("field %s has no description", f.Name)
		}
	}
}

func TestSchemaIsStrictAndNullable(t *testing.T) {
	schema := BuildMetricsJSONSchema()
	if ap, ok := schema["additionalProperties"].(bool); !ok || ap {
		t.Errorf("additionalProperties = %v, want false", schema["additionalProperties"])
	}
	props := schema["properties"].(map[string]any)
	if len(props) != len(Fields) {
		t.Errorf("schema has %d properties, want %d", len(props), len(Fields))
	}
	for _, f := range Fields {
		prop, ok := props[f.Name].(map[string]any)
		if !ok {
			t.Errorf("schema missing property %s", f.Name)
			continue
		}
		types := prop["type"].([]string)
		hasNull := false
		for _, ty := range types {
			if ty == "null" {
				hasNull = true
			}
		}
		if !hasNull {
			t.Errorf("property %s does not accept null", f.Name)
		}
	}
}

func TestTemplateSkeletonCoversEveryField(t *testing.T) {
	skel := TemplateSkeleton()
	if !strings.Contains(skel, "{content}") {
		t.Error("skeleton has no {content} placeholder")
	}
	for _, f := range Fields {
		if !strings.Contains(skel, f.Name+": "+f.Description) {
			t.Errorf("skeleton missing guide line for %s", f.Name)
		}
	}
}
