package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/datahunter/backend/internal/domain"
)

// GroundedSourceSentinel is the source reference used when a grounded
// response cites no URLs: the model's own search was the source.
const GroundedSourceSentinel = "Gemini Grounded Search"

// Markdown table column contract. The grounded prompt and this index table
// must change together; parsing never uses bare numbers.
const (
	colGTIN = iota
	colBrand
	colName
	colWeight
	colOrganicID
	colIngredients
	colAllergens
	colMayContain
	colScope
	colEnergy
	colFat
	colSaturates
	colCarbs
	colSugars
	colFiber
	colProtein
	colSalt
	colConfidence
)

const tableSeparator = "|"

var urlRegex = regexp.MustCompile(`https?://[^\s|)\]"'<>]+`)

// ParseStrictJSON decodes the synthesizer's cleaned text as the 15-field
// product mapping. Empty fields are normalized to the sentinel so the
// schema-completeness invariant holds even for sloppy model output.
func ParseStrictJSON(text string) (domain.ProductFields, error) {
	var fields domain.ProductFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return domain.ProductFields{}, fmt.Errorf("model output is not valid JSON: %w", err)
	}
	return fillSentinels(fields), nil
}

// TableRecord is the outcome of the markdown-table strategy.
type TableRecord struct {
	Fields domain.ProductFields
	Status string // confidence column, or "No Data"
	Source string // cited URLs, or GroundedSourceSentinel
	Found  bool
}

// ParseMarkdownTable scans a grounded response for the table row carrying
// the queried GTIN and maps its columns positionally. A response with no
// matching row yields the default all-sentinel record.
func ParseMarkdownTable(text, gtin string) TableRecord {
	row := findTableRow(text, gtin)
	if row == nil {
		return TableRecord{
			Fields: domain.SentinelFields(),
			Status: "No Data",
			Found:  false,
		}
	}

	fields := domain.ProductFields{
		ProductName: joinBrandAndName(cell(row, colBrand), cell(row, colName)),
		Weight:      cell(row, colWeight),
		Ingredients: cell(row, colIngredients),
		Allergens:   cell(row, colAllergens),
		MayContain:  cell(row, colMayContain),
		NutriScope:  cell(row, colScope),
		Energy:      cell(row, colEnergy),
		Fat:         cell(row, colFat),
		Saturates:   cell(row, colSaturates),
		Carbs:       cell(row, colCarbs),
		Sugars:      cell(row, colSugars),
		Fiber:       cell(row, colFiber),
		Protein:     cell(row, colProtein),
		Salt:        cell(row, colSalt),
		OrganicID:   cell(row, colOrganicID),
	}

	status := cell(row, colConfidence)
	if status == domain.FieldSentinel {
		status = "Found"
	}

	return TableRecord{
		Fields: fillSentinels(fields),
		Status: status,
		Source: extractSources(text),
		Found:  true,
	}
}

// findTableRow returns the trimmed cells of the first line containing both
// the separator and the GTIN, or nil. A leading empty cell (artifact of a
// row starting with the separator) is dropped so indexing stays positional.
func findTableRow(text, gtin string) []string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, tableSeparator) || !strings.Contains(line, gtin) {
			continue
		}

		cells := strings.Split(line, tableSeparator)
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		if len(cells) > 0 && cells[0] == "" {
			cells = cells[1:]
		}

		return cells
	}
	return nil
}

// cell reads a column by index, degrading to the sentinel when the row is
// short or the cell empty.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return domain.FieldSentinel
	}
	value := row[idx]
	if value == "" {
		return domain.FieldSentinel
	}
	return value
}

// joinBrandAndName combines the brand and name columns into product_name,
// skipping whichever half is missing.
func joinBrandAndName(brand, name string) string {
	brandOK := brand != "" && brand != domain.FieldSentinel
	nameOK := name != "" && name != domain.FieldSentinel

	switch {
	case brandOK && nameOK:
		return brand + " " + name
	case brandOK:
		return brand
	case nameOK:
		return name
	default:
		return domain.FieldSentinel
	}
}

// extractSources collects every URL-shaped substring from the response,
// deduplicated in order of appearance. No citations means the model's own
// grounded search was the source.
func extractSources(text string) string {
	matches := urlRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return GroundedSourceSentinel
	}

	seen := make(map[string]bool, len(matches))
	var urls []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			urls = append(urls, m)
		}
	}

	return strings.Join(urls, ", ")
}

// fillSentinels replaces empty product fields with the sentinel value.
func fillSentinels(fields domain.ProductFields) domain.ProductFields {
	fill := func(s *string) {
		if strings.TrimSpace(*s) == "" {
			*s = domain.FieldSentinel
		}
	}

	fill(&fields.ProductName)
	fill(&fields.Weight)
	fill(&fields.Ingredients)
	fill(&fields.Allergens)
	fill(&fields.MayContain)
	fill(&fields.NutriScope)
	fill(&fields.Energy)
	fill(&fields.Fat)
	fill(&fields.Saturates)
	fill(&fields.Carbs)
	fill(&fields.Sugars)
	fill(&fields.Protein)
	fill(&fields.Fiber)
	fill(&fields.Salt)
	fill(&fields.OrganicID)

	return fields
}
