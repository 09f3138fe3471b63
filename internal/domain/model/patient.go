// Package model defines the core domain entities for the clinic client.
package model

// Gender is the patient gender as stored by the clinic service.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Patient represents a registered patient record.
type Patient struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         Gender `json:"gender"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history,omitempty"`
	LastVisit      string `json:"last_visit,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// MedicalRecord is one diagnosis/treatment entry in a patient's history.
type MedicalRecord struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes,omitempty"`
	Doctor    string `json:"doctor,omitempty"`
}

// MedicalReport is an uploaded document attached to a patient.
type MedicalReport struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	FileURL    string `json:"fileUrl,omitempty"`
	FileType   string `json:"fileType,omitempty"`
	UploadedBy string `json:"uploadedBy,omitempty"`
}

// PatientDetails aggregates everything the profile view needs in one payload.
type PatientDetails struct {
	Patient        Patient         `json:"patient"`
	MedicalRecords []MedicalRecord `json:"medicalRecords"`
	BillingHistory []Bill          `json:"billingHistory"`
	MedicalReports []MedicalReport `json:"medicalReports"`
}
