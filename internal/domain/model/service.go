package model

// ServiceCategory classifies a clinic service for listing and reporting.
type ServiceCategory string

const (
	CategoryConsultation ServiceCategory = "Consultation"
	CategoryLaboratory   ServiceCategory = "Laboratory"
	CategoryRadiology    ServiceCategory = "Radiology"
	CategoryCardiology   ServiceCategory = "Cardiology"
	CategoryTherapy      ServiceCategory = "Therapy"
	CategoryVaccination  ServiceCategory = "Vaccination"
	CategoryDental       ServiceCategory = "Dental"
)

// ServiceCategories lists every valid category, in display order.
var ServiceCategories = []ServiceCategory{
	CategoryConsultation,
	CategoryLaboratory,
	CategoryRadiology,
	CategoryCardiology,
	CategoryTherapy,
	CategoryVaccination,
	CategoryDental,
}

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	for _, known := range ServiceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Service represents a billable clinic service from the service catalog.
type Service struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Category    ServiceCategory `json:"category"`
	IsActive    bool            `json:"is_active"`
}
