package stubserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// account pairs a staff identity with its password hash.
type account struct {
	user         model.User
	passwordHash []byte
}

// Store is the in-memory state behind the stub server. Everything lives in
// process memory and is lost on restart; that is the point of a dev stub.
type Store struct {
	mu sync.RWMutex

	accounts map[string]account
	patients map[int64]model.Patient
	services map[int64]model.Service
	bills    map[int64]model.Bill

	nextPatientID int64
	nextServiceID int64
	nextBillID    int64
	nextRecordID  int64
	nextReportID  int64
	billSeq       int64

	records map[int64][]model.MedicalRecord
	reports map[int64][]model.MedicalReport
}

// NewStore creates a store seeded with demo accounts, patients and services.
// Both demo accounts share demoPassword: "admin" (admin role) and
// "reception" (receptionist role).
func NewStore(demoPassword string) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	s := &Store{
		accounts: map[string]account{},
		patients: map[int64]model.Patient{},
		services: map[int64]model.Service{},
		bills:    map[int64]model.Bill{},
		records:  map[int64][]model.MedicalRecord{},
		reports:  map[int64][]model.MedicalReport{},
	}

	s.accounts["admin"] = account{
		user: model.User{
			ID: 1, Username: "admin", Email: "admin@clinic.local",
			FirstName: "Asha", LastName: "Verma", Role: model.RoleAdmin,
		},
		passwordHash: hash,
	}
	s.accounts["reception"] = account{
		user: model.User{
			ID: 2, Username: "reception", Email: "reception@clinic.local",
			FirstName: "Ravi", LastName: "Nair", Role: model.RoleReceptionist,
		},
		passwordHash: hash,
	}

	now := time.Now().Format(time.RFC3339)
	seedPatients := []model.Patient{
		{Name: "Meera Sharma", Age: 34, Gender: model.GenderFemale, Phone: "9876543210", Address: "12 Lake Road", CreatedAt: now},
		{Name: "Arjun Patel", Age: 45, Gender: model.GenderMale, Phone: "9812345678", Address: "7 Hill Street", MedicalHistory: "Hypertension", CreatedAt: now},
		{Name: "Sam Joseph", Age: 29, Gender: model.GenderOther, Phone: "9801234567", Address: "3 Park Avenue", CreatedAt: now},
	}
	for _, p := range seedPatients {
		s.nextPatientID++
		p.ID = s.nextPatientID
		s.patients[p.ID] = p
	}

	seedServices := []model.Service{
		{Name: "General Consultation", Price: 500, Category: model.CategoryConsultation, IsActive: true},
		{Name: "Blood Test", Price: 300, Category: model.CategoryLaboratory, IsActive: true},
		{Name: "Chest X-Ray", Price: 800, Category: model.CategoryRadiology, IsActive: true},
		{Name: "ECG", Price: 650, Category: model.CategoryCardiology, IsActive: true},
		{Name: "Tetanus Vaccine", Price: 250, Category: model.CategoryVaccination, IsActive: true},
	}
	for _, svc := range seedServices {
		s.nextServiceID++
		svc.ID = s.nextServiceID
		s.services[svc.ID] = svc
	}

	return s, nil
}

// Authenticate verifies a username/password pair and returns the identity.
func (s *Store) Authenticate(username, password string) (*model.User, bool) {
	s.mu.RLock()
	acc, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, false
	}
	user := acc.user
	return &user, true
}

// UserByID returns a staff identity by ID.
func (s *Store) UserByID(id int64) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			user := acc.user
			return &user, true
		}
	}
	return nil, false
}

// Patients returns all patients ordered by ID.
func (s *Store) Patients() []model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Patient returns one patient by ID.
func (s *Store) Patient(id int64) (model.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	return p, ok
}

// CreatePatient stores a new patient and assigns its ID.
func (s *Store) CreatePatient(p model.Patient) model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPatientID++
	p.ID = s.nextPatientID
	now := time.Now().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	s.patients[p.ID] = p
	return p
}

// UpdatePatient replaces a patient record, keeping creation metadata.
func (s *Store) UpdatePatient(id int64, p model.Patient) (model.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.patients[id]
	if !ok {
		return model.Patient{}, false
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().Format(time.RFC3339)
	s.patients[id] = p
	return p, true
}

// DeletePatient removes a patient and its attachments.
func (s *Store) DeletePatient(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return false
	}
	delete(s.patients, id)
	delete(s.records, id)
	delete(s.reports, id)
	return true
}

// PatientDetails aggregates a patient with records, reports and bills.
func (s *Store) PatientDetails(id int64) (model.PatientDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return model.PatientDetails{}, false
	}
	return model.PatientDetails{
		Patient:        p,
		MedicalRecords: append([]model.MedicalRecord(nil), s.records[id]...),
		MedicalReports: append([]model.MedicalReport(nil), s.reports[id]...),
		BillingHistory: s.billsByPatientLocked(id),
	}, true
}

// AddMedicalRecord appends a record to a patient's history.
func (s *Store) AddMedicalRecord(patientID int64, rec model.MedicalRecord) (model.MedicalRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[patientID]; !ok {
		return model.MedicalRecord{}, false
	}
	s.nextRecordID++
	rec.ID = s.nextRecordID
	rec.Date = time.Now().Format(time.RFC3339)
	s.records[patientID] = append(s.records[patientID], rec)
	return rec, true
}

// DeleteMedicalRecord removes one record from a patient's history.
func (s *Store) DeleteMedicalRecord(patientID, recordID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.records[patientID]
	for i, rec := range recs {
		if rec.ID == recordID {
			s.records[patientID] = append(recs[:i], recs[i+1:]...)
			return true
		}
	}
	return false
}

// AddMedicalReport attaches a report to a patient.
func (s *Store) AddMedicalReport(patientID int64, rep model.MedicalReport) (model.MedicalReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[patientID]; !ok {
		return model.MedicalReport{}, false
	}
	s.nextReportID++
	rep.ID = s.nextReportID
	rep.Date = time.Now().Format(time.RFC3339)
	s.reports[patientID] = append(s.reports[patientID], rep)
	return rep, true
}

// DeleteMedicalReport removes one report from a patient.
func (s *Store) DeleteMedicalReport(patientID, reportID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	reps := s.reports[patientID]
	for i, rep := range reps {
		if rep.ID == reportID {
			s.reports[patientID] = append(reps[:i], reps[i+1:]...)
			return true
		}
	}
	return false
}

// Services returns the service catalog ordered by ID.
func (s *Store) Services() []model.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Service returns one catalog entry by ID.
func (s *Store) Service(id int64) (model.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	return svc, ok
}

// CreateService adds a catalog entry and assigns its ID.
func (s *Store) CreateService(svc model.Service) model.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextServiceID++
	svc.ID = s.nextServiceID
	s.services[svc.ID] = svc
	return svc
}

// UpdateService replaces a catalog entry.
func (s *Store) UpdateService(id int64, svc model.Service) (model.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return model.Service{}, false
	}
	svc.ID = id
	s.services[id] = svc
	return svc, true
}

// DeleteService removes a catalog entry.
func (s *Store) DeleteService(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return false
	}
	delete(s.services, id)
	return true
}

// Bills returns all bills, newest first.
func (s *Store) Bills() []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Bill returns one bill by ID.
func (s *Store) Bill(id int64) (model.Bill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[id]
	return b, ok
}

// InsertBill stores a computed bill, assigning its ID and bill number.
func (s *Store) InsertBill(b model.Bill) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBillID++
	s.billSeq++
	b.ID = s.nextBillID
	b.BillNumber = fmt.Sprintf("CLN-%s-%04d", time.Now().Format("20060102"), s.billSeq)
	b.Date = time.Now().Format(time.RFC3339)
	s.bills[b.ID] = b
	return b
}

// UpdateBillStatus changes the payment status of a bill.
func (s *Store) UpdateBillStatus(id int64, status model.BillStatus) (model.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return model.Bill{}, false
	}
	b.Status = status
	s.bills[id] = b
	return b, true
}

// BillsByPatient returns the bills issued to one patient, newest first.
func (s *Store) BillsByPatient(patientID int64) []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.billsByPatientLocked(patientID)
}

func (s *Store) billsByPatientLocked(patientID int64) []model.Bill {
	var out []model.Bill
	for _, b := range s.bills {
		if b.Patient == patientID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// BillsByDate returns the bills issued on one day (YYYY-MM-DD), oldest first.
func (s *Store) BillsByDate(date string) []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Bill
	for _, b := range s.bills {
		if strings.HasPrefix(b.Date, date) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dashboard computes the aggregate figures for the dashboard endpoint.
func (s *Store) Dashboard() model.DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := time.Now().Format("2006-01-02")
	data := model.DashboardData{
		TotalPatients:  len(s.patients),
		TotalBills:     len(s.bills),
		RecentBills:    []model.Bill{},
		RecentPatients: []model.Patient{},
		DailyStats:     []model.DailyStat{},
	}

	bills := make([]model.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		bills = append(bills, b)
		data.TotalRevenue += b.GrandTotal
		if strings.HasPrefix(b.Date, today) {
			data.TodayBills++
			data.TodayRevenue += b.GrandTotal
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID > bills[j].ID })
	if len(bills) > 5 {
		bills = bills[:5]
	}
	data.RecentBills = bills

	for _, p := range s.patients {
		if strings.HasPrefix(p.CreatedAt, today) {
			data.TodayPatients++
		}
	}

	patients := make([]model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		patients = append(patients, p)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID > patients[j].ID })
	if len(patients) > 5 {
		patients = patients[:5]
	}
	data.RecentPatients = patients

	return data
}
