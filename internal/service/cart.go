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
)

// CartService owns the cart invariants: one line per (user, product),
// quantity never above the stock seen at write time, and every mutation
// gated on the owning user. The stock check is read-then-write, same as
// concurrent adds can both pass it; each write is a single statement so
// nothing is left half-committed.
type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*transport.CartItemView, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero: %w", errs.ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("add_item_failed", "reason", "product not found")
			return nil, fmt.Errorf("product not found: %w", errs.ErrNotFound)
		}
		return nil, errs.Persistence("get product", err)
	}

	item, err := s.Repo.GetCartItemByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		newQuantity := item.Quantity + quantity
		if newQuantity > product.Stock {
			return nil, &errs.StockExceeded{
				Available: product.Stock,
				InCart:    item.Quantity,
				Requested: quantity,
			}
		}
		item.Quantity = newQuantity
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			l.Error("add_item_failed", "error", err)
			return nil, errs.Persistence("update cart item", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			return nil, &errs.StockExceeded{
				Available: product.Stock,
				Requested: quantity,
			}
		}
		item = &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.Repo.CreateCartItem(ctx, item); err != nil {
			l.Error("add_item_failed", "error", err)
			return nil, errs.Persistence("create cart item", err)
		}

	default:
		return nil, errs.Persistence("get cart item", err)
	}

	l.Info("cart_item_upserted", "quantity", item.Quantity)
	return itemView(item, product), nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	items, err := s.Repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, errs.Persistence("get cart items", err)
	}

	view := &transport.CartView{
		TotalCartValue: decimal.Zero,
		Items:          make([]transport.CartItemView, 0, len(items)),
	}
	for i := range items {
		// product deleted after being carted, nothing to show
		if items[i].Product.ID == uuid.Nil {
			continue
		}
		iv := itemView(&items[i], &items[i].Product)
		view.TotalCartValue = view.TotalCartValue.Add(iv.TotalPrice)
		view.Items = append(view.Items, *iv)
	}
	view.ItemsCount = len(view.Items)

	return view, nil
}

func (s *CartService) UpdateItem(ctx context.Context, itemID, userID uuid.UUID, quantity int) (*transport.CartItemView, error) {
	l := logging.FromContext(ctx).With("svc", "cart.update", "user_id", userID, "item_id", itemID)

	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero: %w", errs.ErrValidation)
	}

	item, err := s.Repo.GetCartItemByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_item_failed", "reason", "item not found for user")
			return nil, fmt.Errorf("cart item not found: %w", errs.ErrNotFound)
		}
		return nil, errs.Persistence("get cart item", err)
	}

	product, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_item_failed", "reason", "product no longer exists")
			return nil, fmt.Errorf("product not found: %w", errs.ErrNotFound)
		}
		return nil, errs.Persistence("get product", err)
	}

	if quantity > product.Stock {
		return nil, &errs.StockExceeded{
			Available: product.Stock,
			InCart:    item.Quantity,
			Requested: quantity,
		}
	}

	item.Quantity = quantity
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		l.Error("update_item_failed", "error", err)
		return nil, errs.Persistence("update cart item", err)
	}

	l.Info("cart_item_updated", "quantity", quantity)
	return itemView(item, product), nil
}

func (s *CartService) RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "user_id", userID, "item_id", itemID)

	item, err := s.Repo.GetCartItemByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("remove_item_failed", "reason", "item not found for user")
			return fmt.Errorf("cart item not found: %w", errs.ErrNotFound)
		}
		return errs.Persistence("get cart item", err)
	}

	if err := s.Repo.DeleteCartItem(ctx, item.ID); err != nil {
		l.Error("remove_item_failed", "error", err)
		return errs.Persistence("delete cart item", err)
	}

	l.Info("cart_item_removed")
	return nil
}

// ClearCart deletes every line of the user's cart. Clearing an empty cart
// is a successful no-op.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	l := logging.FromContext(ctx).With("svc", "cart.clear", "user_id", userID)

	affected, err := s.Repo.DeleteCartItemsByUser(ctx, userID)
	if err != nil {
		l.Error("clear_cart_failed", "error", err)
		return 0, errs.Persistence("clear cart", err)
	}

	l.Info("cart_cleared", "items_removed", affected)
	return affected, nil
}

func itemView(item *models.CartItem, product *models.Product) *transport.CartItemView {
	return &transport.CartItemView{
		ID:         item.ID,
		UserID:     item.UserID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		Product: transport.ProductSnapshot{
			ID:        product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Stock:     product.Stock,
		},
		CreatedAt: item.CreatedAt,
	}
}
