// Command clinicctl is a terminal front end for the clinic management
// service: login/logout, patient and service listings, bill creation and
// daily reports, all through the authenticated API client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/config"
	"github.com/guttosm/clinic-client/internal/billing"
	"github.com/guttosm/clinic-client/internal/client"
	"github.com/guttosm/clinic-client/internal/export"
	"github.com/guttosm/clinic-client/internal/logger"
	"github.com/guttosm/clinic-client/internal/session"
)

const usage = `usage: clinicctl <command> [flags]

commands:
  login         -u <username> -p <password>
  logout
  whoami
  patients
  patient       -id <id>
  services
  bills
  bill-create   -patient <id> -item <serviceID:qty> [-item ...] [-discount-type percentage|amount] [-discount-value <n>] [-notes <text>]
  daily-report  [-date YYYY-MM-DD] [-csv <file>]
  dashboard
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := session.NewFileStore(cfg.API.TokenFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open credential store")
	}
	api := client.New(cfg.API.BaseURL, store, client.WithTimeout(cfg.API.Timeout))

	ctx := context.Background()
	if err := run(ctx, api, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", friendlyMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, api *client.Client, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, api, args)
	case "logout":
		return api.Logout()
	case "whoami":
		return cmdWhoami(ctx, api)
	case "patients":
		return cmdPatients(ctx, api)
	case "patient":
		return cmdPatient(ctx, api, args)
	case "services":
		return cmdServices(ctx, api)
	case "bills":
		return cmdBills(ctx, api)
	case "bill-create":
		return cmdBillCreate(ctx, api, args)
	case "daily-report":
		return cmdDailyReport(ctx, api, args)
	case "dashboard":
		return cmdDashboard(ctx, api)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// friendlyMessage maps error kinds to the messages the web client showed.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrInvalidCredentials):
		return "Username or password didn't match. Please try again."
	case errors.Is(err, client.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	default:
		return err.Error()
	}
}

func cmdLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("login requires -u and -p")
	}

	user, err := api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.DisplayName(), user.Role)
	return nil
}

func cmdWhoami(ctx context.Context, api *client.Client) error {
	user, err := api.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", user.DisplayName(), user.Email, user.Role)
	return nil
}

func cmdPatients(ctx context.Context, api *client.Client) error {
	patients, err := api.Patients.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tGENDER\tPHONE")
	for _, p := range patients {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", p.ID, p.Name, p.Age, p.Gender, p.Phone)
	}
	return w.Flush()
}

func cmdPatient(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("patient", flag.ExitOnError)
	id := fs.Int64("id", 0, "patient ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("patient requires -id")
	}

	details, err := api.Patients.Details(ctx, *id)
	if err != nil {
		return err
	}
	p := details.Patient
	fmt.Printf("%s, %d years, %s\nPhone: %s\nAddress: %s\n", p.Name, p.Age, p.Gender, p.Phone, p.Address)
	if p.MedicalHistory != "" {
		fmt.Printf("History: %s\n", p.MedicalHistory)
	}
	fmt.Printf("Medical records: %d, reports: %d, bills: %d\n",
		len(details.MedicalRecords), len(details.MedicalReports), len(details.BillingHistory))
	return nil
}

func cmdServices(ctx context.Context, api *client.Client) error {
	services, err := api.Services.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tACTIVE")
	for _, svc := range services {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%t\n", svc.ID, svc.Name, svc.Category, svc.Price, svc.IsActive)
	}
	return w.Flush()
}

func cmdBills(ctx context.Context, api *client.Client) error {
	bills, err := api.Bills.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBILL #\tPATIENT\tGRAND TOTAL\tSTATUS")
	for _, b := range bills {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n", b.ID, b.BillNumber, b.PatientName, b.GrandTotal, b.Status)
	}
	return w.Flush()
}

// itemFlags collects repeated -item serviceID:qty flags.
type itemFlags []billingItem

type billingItem struct {
	serviceID int64
	quantity  int
}

func (f *itemFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, item := range *f {
		parts = append(parts, fmt.Sprintf("%d:%d", item.serviceID, item.quantity))
	}
	return strings.Join(parts, ",")
}

func (f *itemFlags) Set(value string) error {
	serviceStr, qtyStr, found := strings.Cut(value, ":")
	if !found {
		return fmt.Errorf("item must be serviceID:qty, got %q", value)
	}
	serviceID, err := strconv.ParseInt(serviceStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid service ID %q", serviceStr)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return fmt.Errorf("invalid quantity %q", qtyStr)
	}
	*f = append(*f, billingItem{serviceID: serviceID, quantity: qty})
	return nil
}

func cmdBillCreate(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("bill-create", flag.ExitOnError)
	patientID := fs.Int64("patient", 0, "patient ID")
	discountType := fs.String("discount-type", "percentage", "percentage or amount")
	discountValue := fs.Float64("discount-value", 0, "discount value")
	notes := fs.String("notes", "", "billing notes")
	var items itemFlags
	fs.Var(&items, "item", "serviceID:qty (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog, err := api.Services.List(ctx)
	if err != nil {
		return err
	}

	// Build the draft through the engine so line totals and the submission
	// gate behave exactly like the billing form did.
	engine := billing.NewEngine(billing.SliceCatalog(catalog))
	var draft []billing.LineItem
	for _, item := range items {
		draft = engine.AddItem(draft)
		id := draft[len(draft)-1].ID
		draft = engine.UpdateItem(draft, id, billing.SetService{ServiceID: item.serviceID})
		draft = engine.UpdateItem(draft, id, billing.SetQuantity{Quantity: item.quantity})
	}

	if reasons := billing.ValidateSubmission(*patientID, draft); len(reasons) > 0 {
		for _, reason := range reasons {
			fmt.Fprintln(os.Stderr, "-", reason)
		}
		return errors.New("bill is not ready to submit")
	}

	discount := billing.Discount{Kind: billing.DiscountKind(*discountType), Value: *discountValue}
	totals := engine.ComputeTotals(draft, discount)
	fmt.Printf("Subtotal: %.2f  Discount: %.2f  Grand total: %.2f\n",
		totals.Subtotal, totals.DiscountAmount, totals.GrandTotal)

	bill, err := api.Bills.Create(ctx, billing.BuildCreateRequest(*patientID, draft, discount, *notes))
	if err != nil {
		return err
	}
	fmt.Printf("created bill %s, grand total %.2f\n", bill.BillNumber, bill.GrandTotal)
	return nil
}

func cmdDailyReport(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("daily-report", flag.ExitOnError)
	date := fs.String("date", "", "report date (YYYY-MM-DD, default today)")
	csvPath := fs.String("csv", "", "export to CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := api.Bills.DailyReport(ctx, *date)
	if err != nil {
		return err
	}

	fmt.Printf("Daily report %s: %d bills, total %.2f, average %.2f, highest %.2f\n",
		report.Date, report.Summary.BillCount, report.Summary.TotalAmount,
		report.Summary.AverageAmount, report.Summary.HighestAmount)

	if *csvPath != "" {
		path := *csvPath
		if path == "-" {
			return export.DailyReportCSV(os.Stdout, report)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.DailyReportCSV(f, report); err != nil {
			return err
		}
		fmt.Println("report exported to", path)
	}
	return nil
}

func cmdDashboard(ctx context.Context, api *client.Client) error {
	data, err := api.Dashboard.Data(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Patients: %d (today %d)\nBills: %d (today %d)\nRevenue: %.2f (today %.2f)\n",
		data.TotalPatients, data.TodayPatients, data.TotalBills, data.TodayBills,
		data.TotalRevenue, data.TodayRevenue)
	return nil
}
