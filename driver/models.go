package driver

// ServiceRow is one active service row as read from the database. Optional
// columns are coalesced to zero values in SQL, identifier columns are cast
// to text, and CreatedAt is formatted RFC3339 before leaving the driver.
type ServiceRow struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Location       string
	Capacity       string
	TechnicalSpecs string
	SupplierID     string
	SupplierName   string
	PricePerDay    float64
	CreatedAt      string
}

// SynonymRow is one row of the synonym table.
type SynonymRow struct {
	Word    string
	Synonym string
}

// SearchDocumentDriver is the engine-side document shape.
type SearchDocumentDriver struct {
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

// SearchHitDriver is one engine hit: the document plus its ranking score.
type SearchHitDriver struct {
	Document SearchDocumentDriver
	Score    float64
}

// SearchResultDriver is the reshaped engine response.
type SearchResultDriver struct {
	Hits       []SearchHitDriver
	TotalFound int64
	Page       int64
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
