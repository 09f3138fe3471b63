package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
)

// BillAPI groups the billing endpoints.
type BillAPI struct {
	c *Client
}

// List fetches all bills.
func (a BillAPI) List(ctx context.Context) ([]model.Bill, error) {
	var list listOf[model.Bill]
	if err := a.c.get(ctx, "/bills/list/", &list); err != nil {
		return nil, err
	}
	return list.items, nil
}

// Get fetches a single bill by ID.
func (a BillAPI) Get(ctx context.Context, id int64) (*model.Bill, error) {
	var b model.Bill
	if err := a.c.get(ctx, fmt.Sprintf("/bills/%d/", id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create submits a new bill. The returned bill carries the server-computed
// bill number, discount amount and grand total.
func (a BillAPI) Create(ctx context.Context, req dto.CreateBillRequest) (*model.Bill, error) {
	var created model.Bill
	if err := a.c.post(ctx, "/bills/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus changes the payment status of a bill.
func (a BillAPI) UpdateStatus(ctx context.Context, id int64, status model.BillStatus) (*model.Bill, error) {
	var updated model.Bill
	if err := a.c.patch(ctx, fmt.Sprintf("/bills/%d/", id), dto.UpdateBillStatusRequest{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DailyReport fetches the bills and summary for one day (YYYY-MM-DD).
func (a BillAPI) DailyReport(ctx context.Context, date string) (*model.DailyReport, error) {
	var report model.DailyReport
	path := "/bills/daily-report/?date=" + url.QueryEscape(date)
	if err := a.c.get(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Download fetches the printable rendering of a bill as raw bytes.
func (a BillAPI) Download(ctx context.Context, id int64) ([]byte, error) {
	var body []byte
	if err := a.c.get(ctx, fmt.Sprintf("/bills/%d/download/", id), &body); err != nil {
		return nil, err
	}
	return body, nil
}
