package application

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
)

const (
	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 5 * time.Minute
)

// CatalogService implements category and product management. Category
// listings are cached in Redis; product photos go to object storage and only
// their URL is persisted.
type CatalogService struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Redis      *redis.Client
	GCS        *storage.Client
	GCSBucket  string
	Logger     *logrus.Logger
}

func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Categories: categories,
		Products:   products,
		Redis:      rdb,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		Logger:     logger,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	if name == "" {
		return nil, invalid("Name is required")
	}
	if _, err := s.Categories.GetByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c := &entity.Category{Name: name, Slug: helpers.Slugify(name)}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.dropCategoriesCache(ctx)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (*entity.Category, error) {
	if name == "" {
		return nil, invalid("Name is required")
	}
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	c.Name = name
	c.Slug = helpers.Slugify(name)
	if err := s.Categories.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.dropCategoriesCache(ctx)
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	if s.Redis != nil {
		var cached []*entity.Category
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, categoriesCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	cats, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, categoriesCacheKey, cats, categoriesCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("category cache write failed")
		}
	}
	return cats, nil
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := s.Categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	s.dropCategoriesCache(ctx)
	return nil
}

func (s *CatalogService) dropCategoriesCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, categoriesCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("category cache invalidation failed")
	}
}

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	CategoryID  string
	Quantity    int
	Shipping    bool
}

func (in *ProductInput) validate() error {
	switch {
	case in.Name == "":
		return invalid("Name is required")
	case in.Description == "":
		return invalid("Description is required")
	case in.PriceCents <= 0:
		return invalid("Price is required")
	case in.CategoryID == "":
		return invalid("Category is required")
	case in.Quantity <= 0:
		return invalid("Quantity is required")
	}
	return nil
}

// CreateProduct persists a new product; when photo is non-nil the image is
// uploaded to GCS first and the product stores its public URL.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput, photo io.Reader, filename, contentType string) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.Products.GetByName(ctx, in.Name); err == nil {
		return nil, ErrProductExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p := &entity.Product{
		Name:        in.Name,
		Slug:        helpers.Slugify(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		CategoryID:  in.CategoryID,
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
	}

	if photo != nil {
		url, err := s.uploadPhoto(ctx, photo, filename, contentType)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput, photo io.Reader, filename, contentType string) (*entity.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	p.Name = in.Name
	p.Slug = helpers.Slugify(in.Name)
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.CategoryID = in.CategoryID
	p.Quantity = in.Quantity
	p.Shipping = in.Shipping

	if photo != nil {
		url, err := s.uploadPhoto(ctx, photo, filename, contentType)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.Products.List(ctx)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) uploadPhoto(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	objectPath := path.Join("products", uuid.NewString()+path.Ext(filename))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}
