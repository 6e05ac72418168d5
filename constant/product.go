package constant

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED_REQUEST"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type ProductEventType string

const (
	ProductCreated      ProductEventType = "product.created"
	ProductPurchased    ProductEventType = "product.purchased"
	ProductOutOfStock   ProductEventType = "product.out_of_stock"
	ProductPriceChanged ProductEventType = "product.price_changed"
	ProductDeleted      ProductEventType = "product.deleted"
)
