package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductEntity represents the product table entity
type ProductEntity struct {
	ID             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	NameNormalized string          `db:"name_normalized" json:"name_normalized"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Stock          int             `db:"stock" json:"stock"`
}

// NormalizeName is the form stored in name_normalized and used for lookups.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

type ProductResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func NewProductResponse(e *ProductEntity) *ProductResponse {
	return &ProductResponse{
		ID:    e.ID,
		Name:  e.Name,
		Price: e.Price,
		Stock: e.Stock,
	}
}

// PaginatedProductResponse is one offset/limit window of products ordered by id.
type PaginatedProductResponse struct {
	Content     []ProductResponse `json:"content"`
	Offset      int               `json:"offset"`
	Limit       int               `json:"limit"`
	NextPage    *string           `json:"nextPage"`
	PrevPage    *string           `json:"prevPage"`
	HasNext     bool              `json:"hasNext"`
	HasPrevious bool              `json:"hasPrevious"`
}

// CreateProductRequest for product creation
type CreateProductRequest struct {
	Name  string           `json:"name" validate:"required,notblank,max=255"`
	Price *decimal.Decimal `json:"price" validate:"required,price_positive,price_digits"`
	Stock int              `json:"stock" validate:"min=0"`
}

// BuyProductRequest buys exactly one unit
type BuyProductRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type ChangePriceRequest struct {
	ID    int64            `json:"id" validate:"gt=0"`
	Price *decimal.Decimal `json:"price" validate:"required,price_positive,price_digits"`
}

// ProductIDParam validates the {id} path segment
type ProductIDParam struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// ProductNameQuery validates the name query parameter of the by-name lookup
type ProductNameQuery struct {
	Name string `json:"name" validate:"max=255,productname"`
}
