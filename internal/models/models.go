package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"                json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null;default:user"     json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string { return "users" }

type Product struct {
	ID          uuid.UUID       `gorm:"primaryKey"                        json:"id"`
	Name        string          `gorm:"uniqueIndex;not null;size:255"     json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"       json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock>=0" json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string { return "products" }

// CartItem holds one (user, product) line. The pair is kept unique by the
// upsert path in the cart service, not by a database constraint.
type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                json:"id"`
	UserID    uuid.UUID `gorm:"index;not null"            json:"user_id"`
	ProductID uuid.UUID `gorm:"not null"                  json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID"      json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string { return "cart_items" }

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"index;not null"`
	JTI       string    `gorm:"index;not null"`
	ExpiresAt int64     `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
