package model

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusPaid      BillStatus = "Paid"
	BillStatusPending   BillStatus = "Pending"
	BillStatusCancelled BillStatus = "Cancelled"
)

// Valid reports whether s is one of the known bill statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPaid, BillStatusPending, BillStatusCancelled:
		return true
	}
	return false
}

// BillItem is one service entry on a bill as returned by the service.
type BillItem struct {
	ID          int64   `json:"id"`
	Service     int64   `json:"service"`
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Bill represents a complete bill with server-computed totals.
type Bill struct {
	ID            int64      `json:"id"`
	BillNumber    string     `json:"bill_number"`
	Date          string     `json:"date"`
	Patient       int64      `json:"patient"`
	PatientName   string     `json:"patient_name"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	DiscountAmount float64   `json:"discount_amount"`
	GrandTotal    float64    `json:"grand_total"`
	Status        BillStatus `json:"status"`
	Items         []BillItem `json:"items"`
	Notes         string     `json:"notes,omitempty"`
	CreatedBy     int64      `json:"created_by,omitempty"`
}

// DailyReportSummary holds the aggregate figures for one reporting day.
type DailyReportSummary struct {
	TotalAmount   float64 `json:"total_amount"`
	BillCount     int     `json:"bill_count"`
	AverageAmount float64 `json:"average_amount"`
	HighestAmount float64 `json:"highest_amount"`
}

// DailyReport is the response of the daily report endpoint.
type DailyReport struct {
	Date    string             `json:"date"`
	Bills   []Bill             `json:"bills"`
	Summary DailyReportSummary `json:"summary"`
}

// DailyStat is one point of the dashboard revenue series.
type DailyStat struct {
	Date     string  `json:"date"`
	Patients int     `json:"patients"`
	Revenue  float64 `json:"revenue"`
}

// DashboardData is the aggregate payload behind the dashboard view.
type DashboardData struct {
	TotalPatients int         `json:"totalPatients"`
	TotalBills    int         `json:"totalBills"`
	TotalRevenue  float64     `json:"totalRevenue"`
	TodayPatients int         `json:"todayPatients"`
	TodayBills    int         `json:"todayBills"`
	TodayRevenue  float64     `json:"todayRevenue"`
	RecentBills   []Bill      `json:"recentBills"`
	RecentPatients []Patient  `json:"recentPatients"`
	DailyStats    []DailyStat `json:"dailyStats"`
}
