package model

import (
	"time"

	"github.com/muhammadheryan/store/constant"
	"github.com/shopspring/decimal"
)

// ProductEvent is published after a product mutation has been committed.
// Deletion events carry only the product id.
type ProductEvent struct {
	Type       constant.ProductEventType `json:"type"`
	ProductID  int64                     `json:"product_id"`
	Name       string                    `json:"name,omitempty"`
	Price      *decimal.Decimal          `json:"price,omitempty"`
	Stock      *int                      `json:"stock,omitempty"`
	OccurredAt time.Time                 `json:"occurred_at"`
}

func NewProductEvent(eventType constant.ProductEventType, p *ProductEntity) ProductEvent {
	price := p.Price
	stock := p.Stock
	return ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      &price,
		Stock:      &stock,
		OccurredAt: time.Now().UTC(),
	}
}

func NewProductDeletedEvent(id int64) ProductEvent {
	return ProductEvent{
		Type:       constant.ProductDeleted,
		ProductID:  id,
		OccurredAt: time.Now().UTC(),
	}
}
