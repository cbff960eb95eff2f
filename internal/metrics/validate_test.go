package metrics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"investor-reporting/internal/common"
)

var decimalCmp = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return &d
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidatePartialRecord(t *testing.T) {
	form, err := Validate([]byte(`{"arr": 100.5, "number_of_clients": 10}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := FormData{
		ARR:             dec(t, "100.5"),
		NumberOfClients: intPtr(10),
	}
	if diff := cmp.Diff(want, form, decimalCmp); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateEmptyObjectAllAbsent(t *testing.T) {
	form, err := Validate([]byte(`{}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff(FormData{}, form, decimalCmp); diff != "" {
		t.Errorf("expected all fields absent (-want +got):\n%s", diff)
	}
}

func TestValidateNullMeansAbsent(t *testing.T) {
	form, err := Validate([]byte(`{"arr": null, "runway_months": null}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if form.ARR != nil || form.RunwayMonths != nil {
		t.Errorf("null values must map to absent, got arr=%v runway_months=%v", form.ARR, form.RunwayMonths)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown key", `{"unknown_field": 1}`},
		{"malformed json", `not json at all`},
		{"empty input", ``},
		{"top-level array", `[1, 2]`},
		{"string for currency", `{"arr": "1,234"}`},
		{"clean numeric string still rejected", `{"arr": "100.5"}`},
		{"fraction for count", `{"number_of_clients": 10.5}`},
		{"bool for ratio", `{"gross_margin_percent": true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Validate([]byte(tc.raw)); !errors.Is(err, common.ErrSchemaValidation) {
				t.Errorf("Validate(%q) err = %v, want ErrSchemaValidation", tc.raw, err)
			}
		})
	}
}

func TestRoundTripPreservesValuesAndAbsence(t *testing.T) {
	orig := FormData{
		ARR:                        dec(t, "1234567.89"),
		Revenue:                    dec(t, "98000.5"),
		NumberOfClients:            intPtr(42),
		NumberOfEmployees:          intPtr(0),
		DebtToEBITDA:               floatPtr(2.5),
		GrossMarginPercent:         floatPtr(0),
		NetRevenueRetentionPercent: floatPtr(112.4),
	}

	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate round trip: %v", err)
	}
	if diff := cmp.Diff(orig, got, decimalCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	// Present zeros must survive as zeros, not become absent.
	if got.NumberOfEmployees == nil || *got.NumberOfEmployees != 0 {
		t.Errorf("zero count did not survive round trip: %v", got.NumberOfEmployees)
	}
}

func TestAbsentSerializesAsNull(t *testing.T) {
	raw, err := json.Marshal(FormData{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, f := range Fields {
		v, ok := m[f.Name]
		if !ok {
			t.Errorf("field %s missing from serialized form", f.Name)
			continue
		}
		if string(v) != "null" {
			t.Errorf("absent field %s serialized as %s, want null", f.Name, v)
		}
	}
}

func TestCurrencySerializesAsNumber(t *testing.T) {
	raw, err := json.Marshal(FormData{ARR: dec(t, "100.5")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(m["arr"]) != "100.5" {
		t.Errorf("arr serialized as %s, want the bare number 100.5", m["arr"])
	}
}
