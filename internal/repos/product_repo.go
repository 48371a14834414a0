package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ammanroofing/internal/domain"
)

// ProductRepo is the exclusive owner of product persistence state. The
// availability flag is recomputed here on every write so no caller can
// persist a value inconsistent with quantity.
type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// computeAvailability derives the flag from quantity. Invoked on every
// create/update path; client-supplied availability is discarded.
func computeAvailability(quantity int) bool { return quantity > 0 }

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func hydrate(p *domain.Product) {
	p.Features = nil
	if p.FeaturesJSON != "" {
		_ = json.Unmarshal([]byte(p.FeaturesJSON), &p.Features)
	}
}

func marshalFeatures(features []string) string {
	if features == nil {
		return "[]"
	}
	b, _ := json.Marshal(features)
	return string(b)
}

const productCols = `
  id, name, category, COALESCE(description,'') AS description, price, quantity,
  availability, image_url, COALESCE(features_json,'[]') AS features_json,
  COALESCE(estimated_delivery,'') AS estimated_delivery,
  created_at, COALESCE(updated_at,'') AS updated_at`

// ListAll returns the full collection in storage order.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	for i := range out {
		hydrate(&out[i])
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	hydrate(&p)
	return p, nil
}

func validateInput(in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalid)
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return fmt.Errorf("%w: imageUrl is required", domain.ErrInvalid)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalid)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalid)
	}
	return nil
}

// Create assigns id and timestamps and derives availability from quantity.
func (r *ProductRepo) Create(in domain.ProductInput) (domain.Product, error) {
	if err := validateInput(in); err != nil {
		return domain.Product{}, err
	}

	ts := now()
	p := domain.Product{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Category:          strings.TrimSpace(in.Category),
		Description:       in.Description,
		Price:             in.Price,
		Quantity:          in.Quantity,
		Availability:      computeAvailability(in.Quantity),
		ImageURL:          strings.TrimSpace(in.ImageURL),
		FeaturesJSON:      marshalFeatures(in.Features),
		Features:          in.Features,
		EstimatedDelivery: in.EstimatedDelivery,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}

	_, err := r.db.Exec(`
		INSERT INTO products(id,name,category,description,price,quantity,availability,
		                     image_url,features_json,estimated_delivery,created_at,updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Category, p.Description, p.Price, p.Quantity, p.Availability,
		p.ImageURL, p.FeaturesJSON, p.EstimatedDelivery, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update applies a partial patch. Empty text fields and nil numbers preserve
// the stored value; availability is recomputed from the resulting quantity
// regardless of what the patch carried.
func (r *ProductRepo) Update(id string, patch domain.ProductPatch) (domain.Product, error) {
	p, err := r.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	if s := strings.TrimSpace(patch.Name); s != "" {
		p.Name = s
	}
	if s := strings.TrimSpace(patch.Category); s != "" {
		p.Category = s
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if s := strings.TrimSpace(patch.ImageURL); s != "" {
		p.ImageURL = s
	}
	if patch.EstimatedDelivery != "" {
		p.EstimatedDelivery = patch.EstimatedDelivery
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return domain.Product{}, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalid)
		}
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return domain.Product{}, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalid)
		}
		p.Quantity = *patch.Quantity
	}
	if patch.Features != nil {
		p.Features = patch.Features
		p.FeaturesJSON = marshalFeatures(patch.Features)
	}

	p.Availability = computeAvailability(p.Quantity)
	p.UpdatedAt = now()

	_, err = r.db.Exec(`
		UPDATE products
		SET name=?, category=?, description=?, price=?, quantity=?, availability=?,
		    image_url=?, features_json=?, estimated_delivery=?, updated_at=?
		WHERE id=?`,
		p.Name, p.Category, p.Description, p.Price, p.Quantity, p.Availability,
		p.ImageURL, p.FeaturesJSON, p.EstimatedDelivery, p.UpdatedAt, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Delete removes a product permanently. Unknown ids report NotFound and
// leave the collection unchanged.
func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search filters by case-insensitive substring match on name or category,
// optional exact category tag, and optional availability state.
func (r *ProductRepo) Search(q, category string, available *bool) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		q = strings.ToLower(q)
		where += ` AND (LOWER(name) LIKE ? OR LOWER(category) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if category != "" {
		where += ` AND LOWER(category) = LOWER(?)`
		args = append(args, category)
	}
	if available != nil {
		where += ` AND availability = ?`
		args = append(args, *available)
	}

	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	for i := range out {
		hydrate(&out[i])
	}
	return out, nil
}
