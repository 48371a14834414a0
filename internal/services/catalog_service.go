package services

import (
	"ammanroofing/internal/domain"
	"ammanroofing/internal/repos"
)

// CatalogService delegates to the product store; all business rules around
// the product record (validation, derived availability) live in the store.
type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.ListAll()
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Create(in domain.ProductInput) (domain.Product, error) {
	return s.Prods.Create(in)
}

func (s *CatalogService) Update(id string, patch domain.ProductPatch) (domain.Product, error) {
	return s.Prods.Update(id, patch)
}

func (s *CatalogService) Delete(id string) error {
	return s.Prods.Delete(id)
}

// Search matches name or category by case-insensitive substring, with an
// optional exact category tag and availability state.
func (s *CatalogService) Search(q, category string, available *bool) ([]domain.Product, error) {
	return s.Prods.Search(q, category, available)
}
