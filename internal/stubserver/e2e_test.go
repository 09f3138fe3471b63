package stubserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/clinic-client/internal/billing"
	"github.com/guttosm/clinic-client/internal/client"
	"github.com/guttosm/clinic-client/internal/domain/model"
	"github.com/guttosm/clinic-client/internal/session"
)

// TestEndToEnd drives the real API client against the stub server: login,
// catalog fetch, bill creation through the engine and the refresh path.
func TestEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	store := session.NewMemoryStore()
	api := client.New(srv.URL, store)
	ctx := context.Background()

	t.Run("login establishes a session", func(t *testing.T) {
		user, err := api.Login(ctx, "admin", testPassword)
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.True(t, user.IsAdmin())

		access, refresh := store.Tokens()
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("bill built through the engine matches server totals", func(t *testing.T) {
		catalog, err := api.Services.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, catalog)

		engine := billing.NewEngine(billing.SliceCatalog(catalog))
		draft := engine.AddItem(nil)
		draft = engine.UpdateItem(draft, 1, billing.SetService{ServiceID: 1})
		draft = engine.UpdateItem(draft, 1, billing.SetQuantity{Quantity: 2})
		draft = engine.AddItem(draft)
		draft = engine.UpdateItem(draft, 2, billing.SetService{ServiceID: 2})

		discount := billing.Discount{Kind: billing.DiscountPercentage, Value: 10}
		require.Empty(t, billing.ValidateSubmission(1, draft))
		local := engine.ComputeTotals(draft, discount)

		bill, err := api.Bills.Create(ctx, billing.BuildCreateRequest(1, draft, discount, ""))
		require.NoError(t, err)
		assert.Equal(t, local.DiscountAmount, bill.DiscountAmount)
		assert.Equal(t, local.GrandTotal, bill.GrandTotal)
		assert.Equal(t, model.BillStatusPending, bill.Status)
	})

	t.Run("expired access token recovers through refresh", func(t *testing.T) {
		// Corrupt only the access token; the refresh token stays valid.
		require.NoError(t, store.SetAccess("expired"))

		patients, err := api.Patients.List(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, patients)

		access, refresh := store.Tokens()
		assert.NotEqual(t, "expired", access, "access token was rotated")
		assert.NotEmpty(t, refresh)
	})

	t.Run("download returns the bill rendering", func(t *testing.T) {
		bills, err := api.Bills.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, bills)

		body, err := api.Bills.Download(ctx, bills[0].ID)
		require.NoError(t, err)
		assert.Contains(t, string(body), bills[0].BillNumber)
	})

	t.Run("logout ends the session locally", func(t *testing.T) {
		require.NoError(t, api.Logout())

		_, err := api.Patients.List(ctx)
		require.Error(t, err)

		var apiErr *client.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.Status)
	})
}
