package domain

import "errors"

// Service is one canonical marketplace record as read from the relational
// store. Only active rows are ever materialized into a Service; the
// repository filters on the active flag server-side.
type Service struct {
	id             string
	title          string
	description    string
	category       string
	location       string
	capacity       string
	technicalSpecs string
	supplierID     string
	supplierName   string
	pricePerDay    float64
	createdAt      string // RFC3339, as delivered by the repository
}

func NewService(id, title, description, category, location, capacity, technicalSpecs, supplierID, supplierName string, pricePerDay float64, createdAt string) (*Service, error) {
	if id == "" {
		return nil, errors.New("service ID cannot be empty")
	}
	if title == "" {
		return nil, errors.New("service title cannot be empty")
	}

	return &Service{
		id:             id,
		title:          title,
		description:    description,
		category:       category,
		location:       location,
		capacity:       capacity,
		technicalSpecs: technicalSpecs,
		supplierID:     supplierID,
		supplierName:   supplierName,
		pricePerDay:    pricePerDay,
		createdAt:      createdAt,
	}, nil
}

func (s *Service) ID() string {
	return s.id
}

func (s *Service) Title() string {
	return s.title
}

func (s *Service) Description() string {
	return s.description
}

func (s *Service) Category() string {
	return s.category
}

func (s *Service) Location() string {
	return s.location
}

func (s *Service) Capacity() string {
	return s.capacity
}

func (s *Service) TechnicalSpecs() string {
	return s.technicalSpecs
}

func (s *Service) SupplierID() string {
	return s.supplierID
}

func (s *Service) SupplierName() string {
	return s.supplierName
}

func (s *Service) PricePerDay() float64 {
	return s.pricePerDay
}

func (s *Service) CreatedAt() string {
	return s.createdAt
}

// SynonymPair is one (word, synonym) row from the synonym table. Root words
// are not unique; grouping happens at sync time.
type SynonymPair struct {
	Word    string
	Synonym string
}
