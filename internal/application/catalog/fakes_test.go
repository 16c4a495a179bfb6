package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
)

// fakeProductRepo is an in-memory ProductRepository
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	c := *p
	return &c
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := f.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			return cloneProduct(p), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *cloneProduct(p))
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *cloneProduct(p))
	}
	return out, nil
}

func (f *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	f.products[product.ID] = cloneProduct(product)
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.products)), nil
}

// fakeCategoryRepo is an in-memory CategoryRepository
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*catalog.Category)}
}

func cloneCategory(c *catalog.Category) *catalog.Category {
	cp := *c
	return &cp
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	if c, ok := f.categories[id]; ok {
		return cloneCategory(c), nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCategoryRepo) FindByName(_ context.Context, name string) (*catalog.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *cloneCategory(c))
	}
	return out, nil
}

func (f *fakeCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	f.categories[category.ID] = cloneCategory(category)
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}
