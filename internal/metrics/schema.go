package metrics

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Currency amounts travel as native JSON numbers, both on the API and in
	// the report store file. Quoted decimals would fail the schema's
	// "number" type.
	decimal.MarshalJSONWithoutQuotes = true
}

// FieldKind classifies the three value shapes a metric can take.
type FieldKind string

const (
	// Currency is a decimal-precision money amount.
	Currency FieldKind = "currency"
	// Count is a whole number of things.
	Count FieldKind = "count"
	// Ratio is a percentage or ratio as a floating-point number.
	Ratio FieldKind = "ratio"
)

// FieldSpec describes one metric: its wire name, value shape, and the
// human-readable description reused for UI tooltips and prompt reference.
type FieldSpec struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Description string    `json:"description"`
}

// Fields is the single declarative table behind validation, serialization,
// and template generation. Order here is the presentation order everywhere.
var Fields = []FieldSpec{
	{"arr", Currency, "Annual Recurring Revenue at the end of the quarter."},
	{"number_of_clients", Count, "Number of clients at period end."},
	{"leads_generated", Count, "Number of leads generated in the period."},
	{"revenue", Currency, "Revenue over the last 12 months (sum of the past 12 months)."},
	{"ebitda", Currency, "EBITDA over the last 12 months (sum of the past 12 months)."},
	{"ebit", Currency, "EBIT over the last 12 months (sum of the past 12 months)."},
	{"corporate_tax", Currency, "Corporate tax over the last 12 months (sum of the past 12 months)."},
	{"total_assets", Currency, "Total assets at the end of the quarter."},
	{"intangible_assets", Currency, "Intangible assets at the end of the quarter."},
	{"debt", Currency, "Debt at the end of the quarter."},
	{"debt_to_ebitda", Ratio, "Debt divided by EBITDA at the end of the quarter."},
	{"percent_international_sales", Ratio, "Percentage of sales that are international at the end of the quarter."},
	{"number_of_employees", Count, "Number of employees at period end."},
	{"number_of_female_employees", Count, "Number of female employees at period end."},
	{"number_of_c_level_executives", Count, "Number of C-level executives at period end."},
	{"number_of_female_c_level_executives", Count, "Number of female C-level executives at period end."},
	{"number_of_board_members", Count, "Number of board members at period end."},
	{"number_of_female_board_members", Count, "Number of female board members at period end."},
	{"monthly_burn", Currency, "Average monthly cash burned in the quarter (cash burned in the quarter / 3)."},
	{"runway_months", Ratio, "Cash runway in months (cash in the bank / monthly burn rate)."},
	{"gross_margin_percent", Ratio, "Gross margin percentage (last month or average for the quarter)."},
	{"annual_logo_churn_percent", Ratio, "Annual logo churn: number of customers lost (sum of the last 12 months) / total number of customers (12 months ago) * 100."},
	{"annual_revenue_churn_percent", Ratio, "Annual revenue churn: total cancelled revenue (sum of the last 12 months) / total revenue (12 months ago) * 100."},
	{"net_revenue_retention_percent", Ratio, "Net revenue retention: (Starting MRR 12 months ago + Expansion MRR over last 12 months – Churn MRR over last 12 months) / Starting MRR (12 months ago)."},
	{"average_acv", Currency, "Average annual contract value (total contract value / total number of customers). If multi-year contracts, consider 1-year contract value (e.g., €1M for 2 years is €0.5M per year)."},
	{"payback_months", Ratio, "Months to recover CAC: CAC / (Average ACV * gross margin / 12)."},
	{"sales_and_marketing_expenses_percent_of_revenue", Ratio, "Sales & Marketing expenses as a percentage of total revenue."},
	{"general_and_administration_expenses_percent_of_revenue", Ratio, "General & Administration expenses as a percentage of total revenue."},
	{"research_and_development_expenses_percent_of_revenue", Ratio, "Research & Development expenses as a percentage of total revenue."},
}

// FormData is the financial and business metrics for one reporting period.
// Every field is optional; nil means "not reported this period" and
// serializes as JSON null. No cross-field consistency is enforced here.
type FormData struct {
	ARR                            *decimal.Decimal `json:"arr"`
	NumberOfClients                *int             `json:"number_of_clients"`
	LeadsGenerated                 *int             `json:"leads_generated"`
	Revenue                        *decimal.Decimal `json:"revenue"`
	EBITDA                         *decimal.Decimal `json:"ebitda"`
	EBIT                           *decimal.Decimal `json:"ebit"`
	CorporateTax                   *decimal.Decimal `json:"corporate_tax"`
	TotalAssets                    *decimal.Decimal `json:"total_assets"`
	IntangibleAssets               *decimal.Decimal `json:"intangible_assets"`
	Debt                           *decimal.Decimal `json:"debt"`
	DebtToEBITDA                   *float64         `json:"debt_to_ebitda"`
	PercentInternationalSales      *float64         `json:"percent_international_sales"`
	NumberOfEmployees              *int             `json:"number_of_employees"`
	NumberOfFemaleEmployees        *int             `json:"number_of_female_employees"`
	NumberOfCLevelExecutives       *int             `json:"number_of_c_level_executives"`
	NumberOfFemaleCLevelExecutives *int             `json:"number_of_female_c_level_executives"`
	NumberOfBoardMembers           *int             `json:"number_of_board_members"`
	NumberOfFemaleBoardMembers     *int             `json:"number_of_female_board_members"`
	MonthlyBurn                    *decimal.Decimal `json:"monthly_burn"`
	RunwayMonths                   *float64         `json:"runway_months"`
	GrossMarginPercent             *float64         `json:"gross_margin_percent"`
	AnnualLogoChurnPercent         *float64         `json:"annual_logo_churn_percent"`
	AnnualRevenueChurnPercent      *float64         `json:"annual_revenue_churn_percent"`
	NetRevenueRetentionPercent     *float64         `json:"net_revenue_retention_percent"`
	AverageACV                     *decimal.Decimal `json:"average_acv"`
	PaybackMonths                  *float64         `json:"payback_months"`
	SalesAndMarketingPercentOfRev  *float64         `json:"sales_and_marketing_expenses_percent_of_revenue"`
	GeneralAndAdminPercentOfRev    *float64         `json:"general_and_administration_expenses_percent_of_revenue"`
	ResearchAndDevPercentOfRev     *float64         `json:"research_and_development_expenses_percent_of_revenue"`
}

// BuildMetricsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We validate extraction output and stored reports against it.
// Unknown keys are an error (additionalProperties: false); every field
// accepts null because absence is a first-class state.
func BuildMetricsJSONSchema() map[string]any {
	props := make(map[string]any, len(Fields))
	for _, f := range Fields {
		switch f.Kind {
		case Count:
			props[f.Name] = map[string]any{"type": []string{"integer", "null"}}
		default:
			props[f.Name] = map[string]any{"type": []string{"number", "null"}}
		}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
