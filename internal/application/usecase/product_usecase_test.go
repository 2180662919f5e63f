package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// fakeProductRepo catálogo en memoria; registra la query normalizada que recibe.
type fakeProductRepo struct {
	products  map[string]*entity.Product
	lastQuery string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Search(normalizedQuery string, limit, offset int) ([]*entity.Product, error) {
	r.lastQuery = normalizedQuery
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Café", SKU: "CAFE-001"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Otro café", SKU: "CAFE-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_UOMPorDefecto(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(dto.CreateProductRequest{Name: "Café", SKU: "CAFE-001"})
	require.NoError(t, err)
	assert.Equal(t, "pcs", out.UOM)
}

func TestProductCreate_UmbralNegativoEsInvalido(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{
		Name:          "Café",
		SKU:           "CAFE-001",
		MinStockLevel: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductSearch_NormalizaLaQuery(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Search("  Café CON Azúcar ", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "cafe con azucar", repo.lastQuery,
		"la búsqueda baja a minúsculas y quita acentos antes de tocar el repo")
}

func TestNormalizeSearch(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Café", "cafe"},
		{"AZÚCAR", "azucar"},
		{"  Niño  ", "nino"},
		{"sku-123", "sku-123"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, usecase.NormalizeSearch(tc.in), "normalizar %q", tc.in)
	}
}
