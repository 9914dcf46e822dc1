package domain

// ProductQuery identifies one lookup: a GTIN/EAN plus the target market.
// The GTIN is treated as an opaque code; no checksum validation is performed.
type ProductQuery struct {
	GTIN   string `json:"gtin"`
	Market string `json:"market"`
}

// ImageEvidence is a downloaded product image plus where it came from.
// It is request-scoped: produced by the evidence hunt, consumed once by the
// synthesizer, never cached.
type ImageEvidence struct {
	ImageURL     string // direct URL of the downloaded image
	SourceURL    string // page the image was found on
	EncodedImage string // base64-encoded image bytes
}

// FieldSentinel marks a product field whose value could not be determined.
const FieldSentinel = "-"

// ProductFields are the 15 product attributes every record carries.
// Consumers must never see a missing key, so all of them are plain strings
// populated with FieldSentinel when unknown.
type ProductFields struct {
	ProductName string `json:"product_name"`
	Weight      string `json:"weight"`
	Ingredients string `json:"ingredients"`
	Allergens   string `json:"allergens"`
	MayContain  string `json:"may_contain"`
	NutriScope  string `json:"nutri_scope"`
	Energy      string `json:"energy"`
	Fat         string `json:"fat"`
	Saturates   string `json:"saturates"`
	Carbs       string `json:"carbs"`
	Sugars      string `json:"sugars"`
	Protein     string `json:"protein"`
	Fiber       string `json:"fiber"`
	Salt        string `json:"salt"`
	OrganicID   string `json:"organic_id"`
}

// ProductRecord is the fixed output schema of the pipeline.
type ProductRecord struct {
	Found     bool   `json:"found"`
	Status    string `json:"status"`
	GTIN      string `json:"gtin"`
	Market    string `json:"market"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url"`
	ProductFields
}

// SentinelFields returns a ProductFields with every attribute set to FieldSentinel.
func SentinelFields() ProductFields {
	return ProductFields{
		ProductName: FieldSentinel,
		Weight:      FieldSentinel,
		Ingredients: FieldSentinel,
		Allergens:   FieldSentinel,
		MayContain:  FieldSentinel,
		NutriScope:  FieldSentinel,
		Energy:      FieldSentinel,
		Fat:         FieldSentinel,
		Saturates:   FieldSentinel,
		Carbs:       FieldSentinel,
		Sugars:      FieldSentinel,
		Protein:     FieldSentinel,
		Fiber:       FieldSentinel,
		Salt:        FieldSentinel,
		OrganicID:   FieldSentinel,
	}
}

// EmptyRecord builds the terminal not-found record for a query. Image and
// source URLs discovered before the failure are preserved so the caller can
// still inspect them even when synthesis failed.
func EmptyRecord(query ProductQuery, status, imageURL, sourceURL string) ProductRecord {
	return ProductRecord{
		Found:         false,
		Status:        status,
		GTIN:          query.GTIN,
		Market:        query.Market,
		ImageURL:      imageURL,
		SourceURL:     sourceURL,
		ProductFields: SentinelFields(),
	}
}
