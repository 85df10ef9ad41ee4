package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ntarasov/shop_backend/internal/errs"
	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/models"
	"github.com/ntarasov/shop_backend/internal/repo"
	"github.com/ntarasov/shop_backend/internal/transport"
	"github.com/ntarasov/shop_backend/internal/util"
)

type ProductService struct {
	Repo *repo.GormRepo
}

type ListProductsParams struct {
	Name     string
	InStock  *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Size     int
}

type ProductList struct {
	Items []models.Product
	Meta  transport.PageMeta
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", errs.ErrNotFound)
		}
		return nil, errs.Persistence("get product", err)
	}
	return product, nil
}

// ListProducts applies the name, stock and price filters conjunctively and
// paginates the result. Page and size outside bounds fall back to the
// defaults rather than erroring.
func (s *ProductService) ListProducts(ctx context.Context, p ListProductsParams) (*ProductList, error) {
	offset, limit := util.Calculate(p.Page, p.Size)
	page := offset/limit + 1

	filter := repo.ProductFilter{
		Name:     p.Name,
		InStock:  p.InStock,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
	}

	total, items, err := s.Repo.ListProducts(ctx, filter, offset, limit)
	if err != nil {
		return nil, errs.Persistence("list products", err)
	}

	return &ProductList{
		Items: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create", "name", req.Name)

	if err := validateProductFields(req.Name, req.Price, req.Stock); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetProductByName(ctx, req.Name); err == nil {
		l.Warn("create_product_failed", "reason", "duplicate name")
		return nil, fmt.Errorf("product with this name already exists: %w", errs.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Persistence("get product by name", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		l.Error("create_product_failed", "error", err)
		return nil, errs.Persistence("create product", err)
	}

	l.Info("product_created", "product_id", product.ID)
	return product, nil
}

// PatchProduct mutates only the fields present in the request. A name
// change is re-checked for uniqueness against every other product.
func (s *ProductService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.patch", "product_id", id)

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", errs.ErrNotFound)
		}
		return nil, errs.Persistence("get product", err)
	}

	if req.Name != nil && *req.Name != product.Name {
		if _, err := s.Repo.GetProductByName(ctx, *req.Name); err == nil {
			l.Warn("patch_product_failed", "reason", "duplicate name")
			return nil, fmt.Errorf("product with this name already exists: %w", errs.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Persistence("get product by name", err)
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := validateProductFields(product.Name, product.Price, product.Stock); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		l.Error("patch_product_failed", "error", err)
		return nil, errs.Persistence("update product", err)
	}

	l.Info("product_updated")
	return product, nil
}

// DeleteProduct is a hard delete. Cart lines referencing the product are
// left in place; they surface as not-found when read back.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "product.delete", "product_id", id)

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", errs.ErrNotFound)
		}
		l.Error("delete_product_failed", "error", err)
		return errs.Persistence("delete product", err)
	}

	l.Info("product_deleted")
	return nil
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	if len(name) > 255 {
		return fmt.Errorf("name longer than 255 characters: %w", errs.ErrValidation)
	}
	if price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", errs.ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", errs.ErrValidation)
	}
	return nil
}
