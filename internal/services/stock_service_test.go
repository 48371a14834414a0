package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ammanroofing/internal/domain"
	"ammanroofing/internal/repos"
	"ammanroofing/internal/services"
)

func TestDeliveryTierBuckets(t *testing.T) {
	cases := []struct {
		available bool
		qty       int
		want      string
	}{
		{false, 0, "Out of stock"},
		{false, 10, "Out of stock"}, // availability wins over quantity
		{true, 75, "2-3 business days"},
		{true, 51, "2-3 business days"},
		{true, 50, "3-5 business days"}, // boundary is exclusive
		{true, 25, "3-5 business days"},
		{true, 21, "3-5 business days"},
		{true, 20, "5-7 business days"}, // boundary is exclusive
		{true, 10, "5-7 business days"},
		{true, 1, "5-7 business days"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.DeliveryTier(tc.available, tc.qty), "available=%v qty=%d", tc.available, tc.qty)
	}
}

func TestProjectIgnoresStoredHint(t *testing.T) {
	items := services.Project([]domain.Product{
		{Name: "Clay Tiles", Category: "tiles", Quantity: 25, Availability: true, EstimatedDelivery: "next week"},
	})
	require.Len(t, items, 1)
	// The stored free-text hint is not consulted for the stock page.
	assert.Equal(t, "3-5 business days", items[0].DeliveryTier)
	assert.Equal(t, "next week", items[0].EstimatedDelivery)
}

func stockFixture() []domain.StockItem {
	return services.Project([]domain.Product{
		{Name: "Roofing Sheets", Category: "metal", Quantity: 100, Availability: true},
		{Name: "Clay Tiles", Category: "tiles", Quantity: 55, Availability: true},
		{Name: "Asphalt Shingles", Category: "shingles", Quantity: 0, Availability: false},
		{Name: "Tile Adhesive", Category: "accessories", Quantity: 0, Availability: false},
	})
}

func TestFilterStockSearch(t *testing.T) {
	items := stockFixture()

	// Case-insensitive substring over name OR category, independent of the
	// availability filter state.
	out := services.FilterStock(items, "TILE", nil)
	require.Len(t, out, 2)
	assert.Equal(t, "Clay Tiles", out[0].Name)
	assert.Equal(t, "Tile Adhesive", out[1].Name)
}

func TestFilterStockTriState(t *testing.T) {
	items := stockFixture()

	out := services.FilterStock(items, "", nil)
	assert.Len(t, out, 4)

	avail := true
	out = services.FilterStock(items, "", &avail)
	assert.Len(t, out, 2)

	avail = false
	out = services.FilterStock(items, "", &avail)
	assert.Len(t, out, 2)

	// Composed: search and availability are independent filters.
	out = services.FilterStock(items, "tile", &avail)
	require.Len(t, out, 1)
	assert.Equal(t, "Tile Adhesive", out[0].Name)
}

func TestStockRows(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	svc := services.NewStockService(repos.NewProductRepo(db))

	rows, err := svc.Rows("", nil)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	tiers := map[string]string{}
	for _, row := range rows {
		tiers[row.Name] = row.DeliveryTier
	}
	// Seeded catalog: 100, 55 and 0 units.
	assert.Equal(t, "2-3 business days", tiers["Roofing Sheets"])
	assert.Equal(t, "2-3 business days", tiers["Clay Tiles"])
	assert.Equal(t, "Out of stock", tiers["Asphalt Shingles"])
}
