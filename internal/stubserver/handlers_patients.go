package stubserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
)

// pathID parses a numeric path parameter, replying 400 on garbage.
func (s *Server) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		s.badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (s *Server) handlePatientList(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Patients())
}

func (s *Server) handlePatientGet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	p, found := s.store.Patient(id)
	if !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handlePatientDetails(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	details, found := s.store.PatientDetails(id)
	if !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) handlePatientCreate(c *gin.Context) {
	var p model.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if errs := dto.ValidatePatient(p); len(errs) > 0 {
		s.validationFailed(c, errs)
		return
	}
	c.JSON(http.StatusCreated, s.store.CreatePatient(p))
}

func (s *Server) handlePatientUpdate(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var p model.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if errs := dto.ValidatePatient(p); len(errs) > 0 {
		s.validationFailed(c, errs)
		return
	}
	updated, found := s.store.UpdatePatient(id, p)
	if !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handlePatientDelete(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if !s.store.DeletePatient(id) {
		s.notFound(c, "patient not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePatientBillingHistory(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if _, found := s.store.Patient(id); !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusOK, s.store.BillsByPatient(id))
}

func (s *Server) handleAddMedicalRecord(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var rec model.MedicalRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	created, found := s.store.AddMedicalRecord(id, rec)
	if !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDeleteMedicalRecord(c *gin.Context) {
	patientID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	recordID, ok := s.pathID(c, "recordId")
	if !ok {
		return
	}
	if !s.store.DeleteMedicalRecord(patientID, recordID) {
		s.notFound(c, "medical record not found")
		return
	}
	details, _ := s.store.PatientDetails(patientID)
	c.JSON(http.StatusOK, details)
}

func (s *Server) handleAddMedicalReport(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var rep model.MedicalReport
	if err := c.ShouldBindJSON(&rep); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	created, found := s.store.AddMedicalReport(id, rep)
	if !found {
		s.notFound(c, "patient not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDeleteMedicalReport(c *gin.Context) {
	patientID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	reportID, ok := s.pathID(c, "reportId")
	if !ok {
		return
	}
	if !s.store.DeleteMedicalReport(patientID, reportID) {
		s.notFound(c, "medical report not found")
		return
	}
	details, _ := s.store.PatientDetails(patientID)
	c.JSON(http.StatusOK, details)
}
