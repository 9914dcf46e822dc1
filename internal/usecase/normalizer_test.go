package usecase

import (
	"testing"

	"github.com/datahunter/backend/internal/domain"
)

func TestParseStrictJSON_AllFields(t *testing.T) {
	text := `{
		"product_name": "BrandX Schoko Kekse",
		"weight": "500g",
		"ingredients": "Weizenmehl, Zucker, Kakao",
		"allergens": "Gluten",
		"may_contain": "Milch, Nüsse",
		"nutri_scope": "per 100g",
		"energy": "2000 kJ / 478 kcal",
		"fat": "20g",
		"saturates": "5g",
		"carbs": "60g",
		"sugars": "30g",
		"protein": "6g",
		"fiber": "3g",
		"salt": "0.5g",
		"organic_id": "N/A"
	}`

	fields, err := ParseStrictJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.ProductName != "BrandX Schoko Kekse" {
		t.Errorf("ProductName = %s", fields.ProductName)
	}
	if fields.Weight != "500g" {
		t.Errorf("Weight = %s", fields.Weight)
	}
	if fields.Energy != "2000 kJ / 478 kcal" {
		t.Errorf("Energy = %s", fields.Energy)
	}
	if fields.OrganicID != "N/A" {
		t.Errorf("OrganicID = %s", fields.OrganicID)
	}
}

func TestParseStrictJSON_MissingKeysBecomeSentinels(t *testing.T) {
	fields, err := ParseStrictJSON(`{"product_name": "Cookies"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.ProductName != "Cookies" {
		t.Errorf("ProductName = %s", fields.ProductName)
	}
	if fields.Weight != domain.FieldSentinel {
		t.Errorf("Weight = %q, want sentinel", fields.Weight)
	}
	if fields.Salt != domain.FieldSentinel {
		t.Errorf("Salt = %q, want sentinel", fields.Salt)
	}
}

func TestParseStrictJSON_InvalidJSON(t *testing.T) {
	_, err := ParseStrictJSON("I could not find this product, sorry!")
	if err == nil {
		t.Fatal("expected parse error for prose output")
	}
}

func TestParseMarkdownTable_WellFormedRow(t *testing.T) {
	text := `Here is the product data you requested:

| 5000112345678 | BrandX | Cookies | 500g | N/A | flour, sugar | gluten | milk | per 100g | 2000 kJ / 478 kcal | 20g | 5g | 60g | 30g | 3g | 6g | 0.5g | High |

Sources:
https://www.tesco.com/groceries/product/1
https://barcodelookup.com/5000112345678`

	record := ParseMarkdownTable(text, "5000112345678")

	if !record.Found {
		t.Fatal("expected the row to be found")
	}
	if record.Status != "High" {
		t.Errorf("Status = %s, want High", record.Status)
	}
	if record.Fields.ProductName != "BrandX Cookies" {
		t.Errorf("ProductName = %s, want brand and name combined", record.Fields.ProductName)
	}
	if record.Fields.Weight != "500g" {
		t.Errorf("Weight = %s", record.Fields.Weight)
	}
	if record.Fields.OrganicID != "N/A" {
		t.Errorf("OrganicID = %s", record.Fields.OrganicID)
	}
	if record.Fields.Ingredients != "flour, sugar" {
		t.Errorf("Ingredients = %s", record.Fields.Ingredients)
	}
	if record.Fields.Fiber != "3g" {
		t.Errorf("Fiber = %s (fiber precedes protein in the column layout)", record.Fields.Fiber)
	}
	if record.Fields.Protein != "6g" {
		t.Errorf("Protein = %s", record.Fields.Protein)
	}
	if record.Fields.Salt != "0.5g" {
		t.Errorf("Salt = %s", record.Fields.Salt)
	}
	if record.Source != "https://www.tesco.com/groceries/product/1, https://barcodelookup.com/5000112345678" {
		t.Errorf("Source = %s", record.Source)
	}
}

func TestParseMarkdownTable_RowWithoutLeadingSeparator(t *testing.T) {
	text := `5000112345678 | BrandX | Cookies | 500g | N/A | flour | gluten | milk | per 100g | 2000 kJ | 20g | 5g | 60g | 30g | 3g | 6g | 0.5g | Medium |`

	record := ParseMarkdownTable(text, "5000112345678")

	if !record.Found {
		t.Fatal("expected the row to be found")
	}
	if record.Fields.ProductName != "BrandX Cookies" {
		t.Errorf("ProductName = %s", record.Fields.ProductName)
	}
	if record.Status != "Medium" {
		t.Errorf("Status = %s", record.Status)
	}
}

func TestParseMarkdownTable_ShortRowDegradesToSentinels(t *testing.T) {
	text := `| 5000112345678 | BrandX | Cookies |`

	record := ParseMarkdownTable(text, "5000112345678")

	if !record.Found {
		t.Fatal("expected the row to be found")
	}
	if record.Fields.ProductName != "BrandX Cookies" {
		t.Errorf("ProductName = %s", record.Fields.ProductName)
	}
	if record.Fields.Energy != domain.FieldSentinel {
		t.Errorf("Energy = %q, want sentinel for missing column", record.Fields.Energy)
	}
	if record.Status != "Found" {
		t.Errorf("Status = %s, want Found when the confidence column is missing", record.Status)
	}
}

func TestParseMarkdownTable_NoMatchingRow(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose only", "I was unable to identify this product."},
		{"separator without gtin", "| some | other | table |"},
		{"gtin without separator", "The GTIN 5000112345678 was not found anywhere."},
		{"empty response", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ParseMarkdownTable(tt.text, "5000112345678")

			if record.Found {
				t.Fatal("expected no row to be found")
			}
			if record.Status != "No Data" {
				t.Errorf("Status = %s, want No Data", record.Status)
			}
			if record.Fields != domain.SentinelFields() {
				t.Errorf("Fields = %+v, want all sentinels", record.Fields)
			}
		})
	}
}

func TestParseMarkdownTable_NoURLsUsesGroundedSentinel(t *testing.T) {
	text := `| 5000112345678 | BrandX | Cookies | 500g | N/A | flour | gluten | milk | per 100g | 2000 kJ | 20g | 5g | 60g | 30g | 3g | 6g | 0.5g | Low |`

	record := ParseMarkdownTable(text, "5000112345678")

	if record.Source != GroundedSourceSentinel {
		t.Errorf("Source = %s, want %s", record.Source, GroundedSourceSentinel)
	}
}

func TestExtractSources_Deduplicates(t *testing.T) {
	text := `See https://a.example.com/p and https://b.example.com/q
	and again https://a.example.com/p`

	got := extractSources(text)

	if got != "https://a.example.com/p, https://b.example.com/q" {
		t.Errorf("extractSources = %q", got)
	}
}

func TestJoinBrandAndName(t *testing.T) {
	tests := []struct {
		brand, name, want string
	}{
		{"BrandX", "Cookies", "BrandX Cookies"},
		{"BrandX", "-", "BrandX"},
		{"-", "Cookies", "Cookies"},
		{"-", "-", "-"},
		{"", "", "-"},
	}

	for _, tt := range tests {
		if got := joinBrandAndName(tt.brand, tt.name); got != tt.want {
			t.Errorf("joinBrandAndName(%q, %q) = %q, want %q", tt.brand, tt.name, got, tt.want)
		}
	}
}
