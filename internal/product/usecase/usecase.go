package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-catalog-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	inventory  inventory.UseCase
	logger     logger.ZapLogger

	// held across the category check and the product write
	mu sync.Locker
}

func NewProductUseCase(repo product.Repository, categories category.Repository, inv inventory.UseCase, lock sync.Locker, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		inventory:  inv,
		logger:     log,
		mu:         lock,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validatePricing(input.Price, input.DiscountPercentage); err != nil {
		return nil, err
	}
	variants, err := buildVariants(input.Variants)
	if err != nil {
		return nil, err
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}

	p, err := uc.create(ctx, &model.Product{
		BaseModel:          model.BaseModel{ID: input.ID},
		CategoryID:         normalize(input.CategoryID),
		SKU:                input.SKU,
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		DiscountPercentage: input.DiscountPercentage,
		Images:             images,
		Variants:           variants,
	})
	if err != nil {
		return nil, err
	}

	uc.syncInventory(ctx, p.ID, input.Inventory, variants, input.Variants)
	uc.logger.Debug("product created", zap.String("product_id", p.ID), zap.Int("variants", len(p.Variants)))
	return p, nil
}

func (uc *productUseCase) create(ctx context.Context, p *model.Product) (*model.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.checkCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, p)
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	var variants []model.ProductVariant
	if input.Variants != nil {
		var err error
		if variants, err = buildVariants(*input.Variants); err != nil {
			return nil, err
		}
	}

	p, err := uc.update(ctx, input, variants)
	if err != nil {
		return nil, err
	}

	var variantInputs []dto.VariantInput
	if input.Variants != nil {
		variantInputs = *input.Variants
	}
	uc.syncInventory(ctx, p.ID, input.Inventory, variants, variantInputs)
	return p, nil
}

func (uc *productUseCase) update(ctx context.Context, input *dto.UpdateProductInput, variants []model.ProductVariant) (*model.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if input.CategoryID.Set {
		if err := uc.checkCategory(ctx, input.CategoryID.Normalized()); err != nil {
			return nil, err
		}
	}

	p, err := uc.repo.Update(ctx, input.ID, func(p *model.Product) error {
		price, discount := p.Price, p.DiscountPercentage
		if input.Price != nil {
			price = *input.Price
		}
		if input.DiscountPercentage != nil {
			discount = *input.DiscountPercentage
		}
		if err := validatePricing(price, discount); err != nil {
			return err
		}
		p.Price, p.DiscountPercentage = price, discount

		if input.CategoryID.Set {
			p.CategoryID = input.CategoryID.Normalized()
		}
		if input.SKU != nil {
			p.SKU = *input.SKU
		}
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Images != nil {
			p.Images = append([]string{}, (*input.Images)...)
		}
		if input.Variants != nil {
			p.Variants = variants
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", input.ID)
	}
	return p, nil
}

// DeleteProduct leaves the product's inventory records in place.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("product", id)
	}
	uc.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	var added model.ProductVariant
	p, err := uc.repo.Update(ctx, input.ProductID, func(p *model.Product) error {
		added = newVariant(input.VariantInput)
		if _, exists := p.Variant(added.ID); exists {
			return apperror.BadRequest("variant %q already exists on product %q", added.ID, p.ID)
		}
		if added.Price == nil {
			price := p.Price
			added.Price = &price
		}
		p.Variants = append(p.Variants, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", input.ProductID)
	}

	if input.Inventory != nil {
		uc.upsertStock(ctx, p.ID, &added.ID, *input.Inventory)
	}
	return &added, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	p, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Variants == nil {
		return []model.ProductVariant{}, nil
	}
	return p.Variants, nil
}

func (uc *productUseCase) checkCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	cat, err := uc.categories.FindByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperror.InvalidReference("categoryId", *categoryID)
	}
	return nil
}

// syncInventory applies stock levels that came with a product write. It is
// best-effort: the product write has already happened and failures are only
// logged.
func (uc *productUseCase) syncInventory(ctx context.Context, productID string, base *int, variants []model.ProductVariant, inputs []dto.VariantInput) {
	if base != nil {
		uc.upsertStock(ctx, productID, nil, *base)
	}
	for i, in := range inputs {
		if in.Inventory == nil {
			continue
		}
		variantID := variants[i].ID
		uc.upsertStock(ctx, productID, &variantID, *in.Inventory)
	}
}

func (uc *productUseCase) upsertStock(ctx context.Context, productID string, variantID *string, qty int) {
	_, err := uc.inventory.UpsertInventory(ctx, &invdto.UpsertInventoryInput{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  qty,
	})
	if err != nil {
		fields := []zap.Field{zap.String("product_id", productID), zap.Int("quantity", qty), zap.Error(err)}
		if variantID != nil {
			fields = append(fields, zap.String("variant_id", *variantID))
		}
		uc.logger.Warn("inventory sync failed", fields...)
	}
}

func buildVariants(inputs []dto.VariantInput) ([]model.ProductVariant, error) {
	variants := make([]model.ProductVariant, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		variants[i] = newVariant(in)
		if seen[variants[i].ID] {
			return nil, apperror.BadRequest("duplicate variant id %q", variants[i].ID)
		}
		seen[variants[i].ID] = true
	}
	return variants, nil
}

func newVariant(in dto.VariantInput) model.ProductVariant {
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	v := model.ProductVariant{
		ID:         id,
		Name:       in.Name,
		Attributes: attrs,
		Price:      in.Price,
		SKU:        in.SKU,
	}
	return v.Clone()
}

func validatePricing(price, discount float64) error {
	if price < 0 {
		return apperror.BadRequest("price must not be negative")
	}
	if discount < 0 || discount > 100 {
		return apperror.BadRequest("discountPercentage must be between 0 and 100")
	}
	return nil
}

func normalize(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
