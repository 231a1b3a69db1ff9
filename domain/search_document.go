package domain

import "time"

// SearchDocument is the flattened engine-side projection of a Service.
// Every field has a defined value: optional source fields collapse to ""
// or 0 so the index schema can treat them as always-present. CreatedAt is
// epoch seconds because the engine's default sort field must be numeric;
// an unparsable timestamp maps to 0, which sorts oldest.
type SearchDocument struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Location       string  `json:"location"`
	Capacity       string  `json:"capacity"`
	TechnicalSpecs string  `json:"technical_specs"`
	SupplierID     string  `json:"supplier_id"`
	SupplierName   string  `json:"supplier_name"`
	PricePerDay    float64 `json:"price_per_day"`
	CreatedAt      int64   `json:"created_at"`
}

func NewSearchDocument(service *Service) SearchDocument {
	return SearchDocument{
		ID:             service.ID(),
		Title:          service.Title(),
		Description:    service.Description(),
		Category:       service.Category(),
		Location:       service.Location(),
		Capacity:       service.Capacity(),
		TechnicalSpecs: service.TechnicalSpecs(),
		SupplierID:     service.SupplierID(),
		SupplierName:   service.SupplierName(),
		PricePerDay:    service.PricePerDay(),
		CreatedAt:      parseEpoch(service.CreatedAt()),
	}
}

func parseEpoch(value string) int64 {
	if value == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0
	}
	return t.Unix()
}
