package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type AddToCartRequest struct {
	ProductID int `json:"product_id"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type CreateProductRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type CartResponse struct {
	Items       []models.CartLine `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
