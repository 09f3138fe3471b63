package client

import (
	"context"
	"fmt"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// PatientAPI groups the patient endpoints.
type PatientAPI struct {
	c *Client
}

// List fetches all patients.
func (a PatientAPI) List(ctx context.Context) ([]model.Patient, error) {
	var list listOf[model.Patient]
	if err := a.c.get(ctx, "/patients/", &list); err != nil {
		return nil, err
	}
	return list.items, nil
}

// Get fetches a single patient by ID.
func (a PatientAPI) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	if err := a.c.get(ctx, fmt.Sprintf("/patients/%d/", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Details fetches a patient together with medical records, billing history
// and uploaded reports.
func (a PatientAPI) Details(ctx context.Context, id int64) (*model.PatientDetails, error) {
	var d model.PatientDetails
	if err := a.c.get(ctx, fmt.Sprintf("/patients/%d/details/", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create registers a new patient.
func (a PatientAPI) Create(ctx context.Context, p model.Patient) (*model.Patient, error) {
	var created model.Patient
	if err := a.c.post(ctx, "/patients/", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a patient record.
func (a PatientAPI) Update(ctx context.Context, id int64, p model.Patient) (*model.Patient, error) {
	var updated model.Patient
	if err := a.c.put(ctx, fmt.Sprintf("/patients/%d/", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a patient.
func (a PatientAPI) Delete(ctx context.Context, id int64) error {
	return a.c.del(ctx, fmt.Sprintf("/patients/%d/", id), nil)
}

// BillingHistory fetches the bills issued to a patient.
func (a PatientAPI) BillingHistory(ctx context.Context, id int64) ([]model.Bill, error) {
	var list listOf[model.Bill]
	if err := a.c.get(ctx, fmt.Sprintf("/patients/%d/billing-history/", id), &list); err != nil {
		return nil, err
	}
	return list.items, nil
}

// AddMedicalRecord appends a diagnosis/treatment entry to a patient.
func (a PatientAPI) AddMedicalRecord(ctx context.Context, id int64, rec model.MedicalRecord) (*model.MedicalRecord, error) {
	var created model.MedicalRecord
	if err := a.c.post(ctx, fmt.Sprintf("/patients/%d/add_medical_record/", id), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteMedicalRecord removes a medical record and returns the refreshed
// patient details.
func (a PatientAPI) DeleteMedicalRecord(ctx context.Context, patientID, recordID int64) (*model.PatientDetails, error) {
	var d model.PatientDetails
	if err := a.c.del(ctx, fmt.Sprintf("/patients/%d/delete-medical-record/%d/", patientID, recordID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// AddMedicalReport attaches an uploaded report to a patient.
func (a PatientAPI) AddMedicalReport(ctx context.Context, id int64, rep model.MedicalReport) (*model.MedicalReport, error) {
	var created model.MedicalReport
	if err := a.c.post(ctx, fmt.Sprintf("/patients/%d/add_medical_report/", id), rep, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteMedicalReport removes an uploaded report and returns the refreshed
// patient details.
func (a PatientAPI) DeleteMedicalReport(ctx context.Context, patientID, reportID int64) (*model.PatientDetails, error) {
	var d model.PatientDetails
	if err := a.c.del(ctx, fmt.Sprintf("/patients/%d/delete-medical-report/%d/", patientID, reportID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}
