package dto

import "github.com/guttosm/clinic-client/internal/domain/model"

// Discount type wire values accepted by the bills endpoint.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

// CreateBillItem is one service line in a bill creation request.
// Price and name are resolved server-side from the service catalog.
type CreateBillItem struct {
	ServiceID int64 `json:"serviceId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateBillRequest represents the JSON request body for POST /bills/.
type CreateBillRequest struct {
	PatientID     int64            `json:"patientId" binding:"required,gt=0"`
	Items         []CreateBillItem `json:"items" binding:"required,min=1"`
	DiscountType  string           `json:"discountType"`
	DiscountValue float64          `json:"discountValue"`
	Notes         string           `json:"notes,omitempty"`
}

// Validate performs custom validation on the bill creation request.
func (r *CreateBillRequest) Validate() error {
	if r.PatientID <= 0 {
		return &ValidationError{Field: "patientId", Message: "patient is required"}
	}
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for _, item := range r.Items {
		if item.ServiceID <= 0 {
			return &ValidationError{Field: "items", Message: "every item must reference a service"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: "items", Message: "quantity must be at least 1"}
		}
	}
	if r.DiscountType != "" && r.DiscountType != DiscountTypePercentage && r.DiscountType != DiscountTypeAmount {
		return &ValidationError{Field: "discountType", Message: "invalid discount type"}
	}
	if r.DiscountValue < 0 {
		return &ValidationError{Field: "discountValue", Message: "discount value cannot be negative"}
	}
	if r.DiscountType == DiscountTypePercentage && r.DiscountValue > 100 {
		return &ValidationError{Field: "discountValue", Message: "percentage discount cannot exceed 100%"}
	}
	return nil
}

// UpdateBillStatusRequest represents the JSON request body for PATCH /bills/{id}/.
type UpdateBillStatusRequest struct {
	Status model.BillStatus `json:"status" binding:"required"`
}

// Validate performs custom validation on the status update request.
func (r *UpdateBillStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Message: "invalid bill status"}
	}
	return nil
}
