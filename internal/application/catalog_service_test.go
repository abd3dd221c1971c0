package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
)

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
	seq  int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, e := range r.byID {
		if e.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("c-%d", r.seq)
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newTestCatalogService() *CatalogService {
	return NewCatalogService(newFakeCategoryRepo(), newFakeProductRepo(), nil, nil, "", nil)
}

func TestCreateCategory(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Home & Garden")
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	if c.Slug != "home-garden" {
		t.Fatalf("slug = %q, want %q", c.Slug, "home-garden")
	}

	if _, err := svc.CreateCategory(ctx, "Home & Garden"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate error = %v, want ErrCategoryExists", err)
	}
	if _, err := svc.CreateCategory(ctx, ""); !IsValidation(err) {
		t.Fatalf("empty name error = %v, want validation failure", err)
	}
}

func TestUpdateCategory_Reslugs(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Books")
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	out, err := svc.UpdateCategory(ctx, c.ID, "Used Books")
	if err != nil {
		t.Fatalf("UpdateCategory error: %v", err)
	}
	if out.Slug != "used-books" {
		t.Fatalf("slug = %q, want %q", out.Slug, "used-books")
	}

	if _, err := svc.UpdateCategory(ctx, "missing", "X"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("unknown id error = %v, want ErrCategoryNotFound", err)
	}
}

func TestGetCategoryBySlug(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "Books"); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	c, err := svc.GetCategoryBySlug(ctx, "books")
	if err != nil {
		t.Fatalf("GetCategoryBySlug error: %v", err)
	}
	if c.Name != "Books" {
		t.Fatalf("name = %q, want %q", c.Name, "Books")
	}

	if _, err := svc.GetCategoryBySlug(ctx, "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("unknown slug error = %v, want ErrCategoryNotFound", err)
	}
}

func validProduct() ProductInput {
	return ProductInput{
		Name:        "Wireless Mouse",
		Description: "A mouse without a tail",
		PriceCents:  2500,
		CategoryID:  "c-1",
		Quantity:    10,
		Shipping:    true,
	}
}

func TestCreateProduct_ValidationOrder(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	cases := []struct {
		mutate func(*ProductInput)
		want   string
	}{
		{func(in *ProductInput) { in.Name = "" }, "Name is required"},
		{func(in *ProductInput) { in.Description = "" }, "Description is required"},
		{func(in *ProductInput) { in.PriceCents = 0 }, "Price is required"},
		{func(in *ProductInput) { in.CategoryID = "" }, "Category is required"},
		{func(in *ProductInput) { in.Quantity = 0 }, "Quantity is required"},
	}
	for _, tc := range cases {
		in := validProduct()
		tc.mutate(&in)
		_, err := svc.CreateProduct(ctx, in, nil, "", "")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("CreateProduct error = %v, want validation failure", err)
		}
		if ve.Message != tc.want {
			t.Errorf("message = %q, want %q", ve.Message, tc.want)
		}
	}
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, validProduct(), nil, "", "")
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}
	if p.Slug != "wireless-mouse" {
		t.Fatalf("slug = %q, want %q", p.Slug, "wireless-mouse")
	}
	if p.ImageURL != "" {
		t.Fatalf("image url without photo: %q", p.ImageURL)
	}

	if _, err := svc.CreateProduct(ctx, validProduct(), nil, "", ""); !errors.Is(err, ErrProductExists) {
		t.Fatalf("duplicate error = %v, want ErrProductExists", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, validProduct(), nil, "", "")
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}

	in := validProduct()
	in.Name = "Wired Mouse"
	in.PriceCents = 1500
	out, err := svc.UpdateProduct(ctx, p.ID, in, nil, "", "")
	if err != nil {
		t.Fatalf("UpdateProduct error: %v", err)
	}
	if out.Slug != "wired-mouse" || out.PriceCents != 1500 {
		t.Fatalf("updated product = %+v", out)
	}

	if _, err := svc.UpdateProduct(ctx, "missing", validProduct(), nil, "", ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown id error = %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()
	svc := newTestCatalogService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, validProduct(), nil, "", "")
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}
	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct error: %v", err)
	}
	if err := svc.DeleteProduct(ctx, p.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second delete error = %v, want ErrProductNotFound", err)
	}
}
