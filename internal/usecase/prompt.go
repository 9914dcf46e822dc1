package usecase

import (
	"fmt"

	"github.com/datahunter/backend/internal/domain"
	"github.com/datahunter/backend/internal/market"
)

// buildEvidencePrompt renders the strict-JSON analysis prompt: the model is
// handed scraped page content (and optionally an image as a second part) and
// must answer with exactly the 15-field JSON object, localized to the
// market's language.
func buildEvidencePrompt(query domain.ProductQuery, pageContent string, hasImage bool) string {
	lang := market.Language(query.Market)

	imageNote := "2. IMAGE: None"
	if hasImage {
		imageNote = "2. IMAGE: Attached"
	}

	return fmt.Sprintf(`You are the **Lead Food Product Researcher**, a specialized analyst designed to compile 100%% accurate product specifications for ambient and packaged goods.

CORE DIRECTIVE: Accuracy is your absolute priority. It is better to state "N/A" than to guess.

INPUT CONTEXT:
- Market: %[1]s (Target Language: %[2]s)
- GTIN: %[3]s
- DATA SOURCE: The text below (scraped from retailers) and the attached image (if any).

1. WEBSITE DATA (Text + Hidden JSON):
"""
%[4]s
"""
%[5]s

---

### PHASE 1: ANALYSIS & LOCALIZATION
1. **Analyze** the provided text and image to extract product details.
2. **Translate** ALL output (Ingredients, Product Name, Allergens) into **%[2]s**.
3. **Verify** details. Look for Organic Codes (e.g., DE-ÖKO-001). If none, use "N/A".

### PHASE 2: DATA STANDARDIZATION rules
- **Ingredients:** Must be a single continuous text string (remove bullet points/line breaks).
- **Energy:** Standardize to "kJ / kcal". Calculate if missing (1 kcal = 4.184 kJ).
- **Values:** Use "N/A" if data is missing. Do not fabricate.

### PHASE 3: OUTPUT FORMAT (STRICT JSON)
You must output valid JSON. Do not generate a Markdown table. Use exactly these keys:

{
  "product_name": "Brand + Product Name (%[2]s)",
  "weight": "Net Weight (e.g. 500g)",
  "ingredients": "Full List (%[2]s)",
  "allergens": "List (%[2]s)",
  "may_contain": "List (%[2]s)",
  "nutri_scope": "per 100g (or per serving if specified)",
  "energy": "0000 kJ / 000 kcal",
  "fat": "0g",
  "saturates": "0g",
  "carbs": "0g",
  "sugars": "0g",
  "protein": "0g",
  "fiber": "0g",
  "salt": "0g",
  "organic_id": "Code or N/A"
}`, query.Market, lang, query.GTIN, pageContent, imageNote)
}

// buildGroundedPrompt renders the grounded-search variant: no evidence is
// supplied, the model runs its own web search and must answer with a single
// markdown table row whose column order matches the table grammar in
// normalizer.go.
func buildGroundedPrompt(query domain.ProductQuery) string {
	lang := market.Language(query.Market)

	return fmt.Sprintf(`You are the **Lead Food Product Researcher**, a specialized analyst designed to compile 100%% accurate product specifications for ambient and packaged goods.

CORE DIRECTIVE: Accuracy is your absolute priority. It is better to state "N/A" than to guess.

TASK: Use your web search capability to identify the product with GTIN/EAN %[1]s as sold in the %[2]s market, and compile its specification.

RULES:
- Translate ALL output (Ingredients, Product Name, Allergens) into **%[3]s**.
- Ingredients must be a single continuous text string (no bullet points or line breaks).
- Standardize energy to "kJ / kcal". Calculate if missing (1 kcal = 4.184 kJ).
- Look for Organic Codes (e.g., DE-ÖKO-001). If none, use "N/A".
- Use "N/A" for any value you cannot verify. Do not fabricate.

OUTPUT FORMAT: Reply with exactly ONE markdown table row (no header row) with these columns in this order:

| GTIN | Brand | Product Name | Net Weight | Organic ID | Ingredients | Allergens | May Contain | Nutritional Scope | Energy | Fat | Saturates | Carbs | Sugars | Fiber | Protein | Salt | Confidence |

- GTIN must be exactly %[1]s.
- Confidence is High, Medium, or Low based on how well your sources agree.
- After the table row, list the URLs of the sources you used.`, query.GTIN, query.Market, lang)
}
