package stubserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/clinic-client/internal/billing"
	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
	"github.com/guttosm/clinic-client/internal/metrics"
)

func (s *Server) handleBillList(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Bills())
}

func (s *Server) handleBillGet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	b, found := s.store.Bill(id)
	if !found {
		s.notFound(c, "bill not found")
		return
	}
	c.JSON(http.StatusOK, b)
}

// handleBillCreate implements POST /bills/. Prices are resolved from the
// service catalog and totals are computed server-side through the billing
// engine, so the response carries authoritative discount_amount and
// grand_total figures.
func (s *Server) handleBillCreate(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.BillsCreatedTotal.WithLabelValues("rejected").Inc()
		s.badRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		metrics.BillsCreatedTotal.WithLabelValues("rejected").Inc()
		s.badRequest(c, err.Error())
		return
	}

	patient, found := s.store.Patient(req.PatientID)
	if !found {
		metrics.BillsCreatedTotal.WithLabelValues("rejected").Inc()
		s.notFound(c, "patient not found")
		return
	}

	engine := billing.NewEngine(billing.SliceCatalog(s.store.Services()))
	var items []billing.LineItem
	for _, reqItem := range req.Items {
		if _, ok := s.store.Service(reqItem.ServiceID); !ok {
			metrics.BillsCreatedTotal.WithLabelValues("rejected").Inc()
			s.badRequest(c, fmt.Sprintf("unknown service %d", reqItem.ServiceID))
			return
		}
		items = engine.AddItem(items)
		id := items[len(items)-1].ID
		items = engine.UpdateItem(items, id, billing.SetService{ServiceID: reqItem.ServiceID})
		items = engine.UpdateItem(items, id, billing.SetQuantity{Quantity: reqItem.Quantity})
	}

	discount := billing.Discount{Kind: billing.DiscountKind(req.DiscountType), Value: req.DiscountValue}
	totals := engine.ComputeTotals(items, discount)

	bill := model.Bill{
		Patient:        patient.ID,
		PatientName:    patient.Name,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		DiscountAmount: totals.DiscountAmount,
		GrandTotal:     totals.GrandTotal,
		Status:         model.BillStatusPending,
		Notes:          req.Notes,
		Items:          make([]model.BillItem, 0, len(items)),
	}
	for _, item := range items {
		bill.Items = append(bill.Items, model.BillItem{
			ID:          item.ID,
			Service:     item.ServiceID,
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
			Total:       item.LineTotal,
		})
	}
	if cl := authClaims(c); cl != nil {
		bill.CreatedBy = cl.UserID
	}

	metrics.BillsCreatedTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, s.store.InsertBill(bill))
}

func (s *Server) handleBillUpdateStatus(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	updated, found := s.store.UpdateBillStatus(id, req.Status)
	if !found {
		s.notFound(c, "bill not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// handleDailyReport implements GET /bills/daily-report/?date=YYYY-MM-DD.
func (s *Server) handleDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		s.badRequest(c, "date must be YYYY-MM-DD")
		return
	}

	bills := s.store.BillsByDate(date)
	report := model.DailyReport{
		Date:  date,
		Bills: bills,
	}
	for _, b := range bills {
		report.Summary.TotalAmount += b.GrandTotal
		if b.GrandTotal > report.Summary.HighestAmount {
			report.Summary.HighestAmount = b.GrandTotal
		}
	}
	report.Summary.BillCount = len(bills)
	if len(bills) > 0 {
		report.Summary.AverageAmount = report.Summary.TotalAmount / float64(len(bills))
	}

	c.JSON(http.StatusOK, report)
}

// handleBillDownload implements GET /bills/{id}/download/ with a plain-text
// rendering of the bill.
func (s *Server) handleBillDownload(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	b, found := s.store.Bill(id)
	if !found {
		s.notFound(c, "bill not found")
		return
	}

	body := fmt.Sprintf("Bill %s\nDate: %s\nPatient: %s\n\n", b.BillNumber, b.Date, b.PatientName)
	for _, item := range b.Items {
		body += fmt.Sprintf("%-30s x%d  %10.2f\n", item.ServiceName, item.Quantity, item.Total)
	}
	body += fmt.Sprintf("\nDiscount: %.2f\nGrand total: %.2f\nStatus: %s\n", b.DiscountAmount, b.GrandTotal, b.Status)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.txt", b.BillNumber))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (s *Server) handleDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Dashboard())
}
