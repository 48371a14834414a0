package services

import (
	"strings"

	"ammanroofing/internal/domain"
	"ammanroofing/internal/repos"
)

type StockService struct {
	Prods *repos.ProductRepo
}

func NewStockService(prods *repos.ProductRepo) *StockService {
	return &StockService{Prods: prods}
}

// DeliveryTier buckets fulfillment time from availability and quantity.
// Boundaries are exclusive: exactly 50 falls in "3-5", exactly 20 in "5-7".
func DeliveryTier(available bool, quantity int) string {
	if !available {
		return "Out of stock"
	}
	switch {
	case quantity > 50:
		return "2-3 business days"
	case quantity > 20:
		return "3-5 business days"
	default:
		return "5-7 business days"
	}
}

// Project converts products to stock rows with the computed tier. The stored
// estimatedDelivery hint is not consulted; the tier is authoritative here.
func Project(products []domain.Product) []domain.StockItem {
	out := make([]domain.StockItem, 0, len(products))
	for _, p := range products {
		out = append(out, domain.StockItem{Product: p, DeliveryTier: DeliveryTier(p.Availability, p.Quantity)})
	}
	return out
}

// FilterStock applies the two independent stock-page filters: free-text
// search over name/category and a tri-state availability filter (nil = all).
func FilterStock(items []domain.StockItem, q string, available *bool) []domain.StockItem {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.StockItem, 0, len(items))
	for _, it := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Category), q) {
			continue
		}
		if available != nil && it.Availability != *available {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Rows fetches the full collection and projects it; filtering happens on the
// fetched snapshot, never against the store.
func (s *StockService) Rows(q string, available *bool) ([]domain.StockItem, error) {
	products, err := s.Prods.ListAll()
	if err != nil {
		return nil, err
	}
	return FilterStock(Project(products), q, available), nil
}
