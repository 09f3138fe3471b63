package billing

import "github.com/guttosm/clinic-client/internal/domain/dto"

// Reason is a user-correctable cause for rejecting a bill submission.
type Reason string

const (
	// ReasonNoPatient means no patient has been selected.
	ReasonNoPatient Reason = "select a patient"
	// ReasonNoItems means the bill has no line items.
	ReasonNoItems Reason = "add at least one service"
	// ReasonIncompleteItem means a line item has no service selected.
	ReasonIncompleteItem Reason = "select services for all items"
)

// ValidateSubmission checks the submission gate: a bill may only be sent
// when a patient is selected, at least one item exists and every item has a
// service chosen. The returned reasons are blocking, enumerable and
// user-correctable; an empty slice means the bill is submittable.
//
// This runs before any network call, so an invalid draft never reaches the
// remote service.
func ValidateSubmission(patientID int64, items []LineItem) []Reason {
	var reasons []Reason
	if patientID <= 0 {
		reasons = append(reasons, ReasonNoPatient)
	}
	if len(items) == 0 {
		reasons = append(reasons, ReasonNoItems)
	} else {
		for _, item := range items {
			if item.ServiceID == 0 {
				reasons = append(reasons, ReasonIncompleteItem)
				break
			}
		}
	}
	return reasons
}

// BuildCreateRequest maps a validated draft to the bills endpoint payload.
// Only service IDs and quantities are sent; the server re-resolves prices
// and computes its own totals.
func BuildCreateRequest(patientID int64, items []LineItem, discount Discount, notes string) dto.CreateBillRequest {
	reqItems := make([]dto.CreateBillItem, 0, len(items))
	for _, item := range items {
		reqItems = append(reqItems, dto.CreateBillItem{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	return dto.CreateBillRequest{
		PatientID:     patientID,
		Items:         reqItems,
		DiscountType:  string(discount.Kind),
		DiscountValue: discount.Value,
		Notes:         notes,
	}
}
