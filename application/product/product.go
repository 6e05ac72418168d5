package product

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
	productRepo "github.com/muhammadheryan/store/repository/product"
	redisRepo "github.com/muhammadheryan/store/repository/redis"
	"github.com/muhammadheryan/store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type ProductApp interface {
	FindByID(ctx context.Context, id int64) (*model.ProductResponse, error)
	FindByName(ctx context.Context, name string) (*model.ProductResponse, error)
	GetPaginatedProducts(ctx context.Context, offset, limit int, baseURL string) (*model.PaginatedProductResponse, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductResponse, error)
	BuyProduct(ctx context.Context, id int64) (*model.ProductResponse, error)
	ChangePrice(ctx context.Context, id int64, price decimal.Decimal) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
	cacheRepo   redisRepo.Repository
	publisher   rabbitmq.ProductEventPublisher
}

// NewProductApp wires the product service. cacheRepo and publisher may be nil.
func NewProductApp(productRepo productRepo.ProductRepository, cacheRepo redisRepo.Repository, publisher rabbitmq.ProductEventPublisher) ProductApp {
	return &productAppImpl{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		publisher:   publisher,
	}
}

func notFoundByID(id int64) error {
	return errors.SetCustomErrorf(constant.ErrNotFound, "Product not found with id=[%d]", id)
}

func (s *productAppImpl) GetPaginatedProducts(ctx context.Context, offset, limit int, baseURL string) (*model.PaginatedProductResponse, error) {
	if offset < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidOffset)
	}

	if limit <= 0 {
		logger.Warn("[GetPaginatedProducts] non-positive limit, using default",
			zap.Int("requested", limit), zap.Int("default", DefaultLimit))
		limit = DefaultLimit
	} else if limit > MaxLimit {
		logger.Warn("[GetPaginatedProducts] limit above maximum, capping",
			zap.Int("requested", limit), zap.Int("max", MaxLimit))
		limit = MaxLimit
	}
	logger.Info("[GetPaginatedProducts] listing products", zap.Int("offset", offset), zap.Int("limit", limit))

	rows, err := s.productRepo.List(ctx, offset, limit)
	if err != nil {
		logger.Error("[GetPaginatedProducts] err productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	content := make([]model.ProductResponse, 0, len(rows))
	for i := range rows {
		content = append(content, *model.NewProductResponse(&rows[i]))
	}

	// A full page is assumed to have a successor.
	hasNext := len(rows) == limit
	hasPrevious := offset > 0

	resp := &model.PaginatedProductResponse{
		Content:     content,
		Offset:      offset,
		Limit:       limit,
		HasNext:     hasNext,
		HasPrevious: hasPrevious,
	}
	if hasNext {
		resp.NextPage = pageLink(baseURL, offset+limit, limit)
	}
	if hasPrevious {
		resp.PrevPage = pageLink(baseURL, max(offset-limit, 0), limit)
	}
	return resp, nil
}

func pageLink(baseURL string, offset, limit int) *string {
	link := fmt.Sprintf("%s?offset=%d&limit=%d", baseURL, offset, limit)
	return &link
}

func (s *productAppImpl) FindByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.getCached(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFoundByID(id)
	}
	return model.NewProductResponse(product), nil
}

// getCached reads through the cache. Cache failures only cost a repository read.
func (s *productAppImpl) getCached(ctx context.Context, id int64) (*model.ProductEntity, error) {
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetProduct(ctx, id)
		if err != nil {
			logger.Warn("[FindByID] err cacheRepo.GetProduct", zap.Int64("id", id), zap.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[FindByID] err productRepo.GetByID", zap.Int64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, nil
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetProduct(ctx, product); err != nil {
			logger.Warn("[FindByID] err cacheRepo.SetProduct", zap.Int64("id", id), zap.String("error", err.Error()))
		}
	}
	return product, nil
}

func (s *productAppImpl) FindByName(ctx context.Context, name string) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		logger.Error("[FindByName] err productRepo.GetByName", zap.String("name", name), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomErrorf(constant.ErrNotFound, "Product not found with name=[%s]", name)
	}
	return model.NewProductResponse(product), nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductResponse, error) {
	entity := &model.ProductEntity{
		Name:           req.Name,
		NameNormalized: model.NormalizeName(req.Name),
		Price:          *req.Price,
		Stock:          req.Stock,
	}

	created, err := s.productRepo.Create(ctx, entity)
	if err != nil {
		if stderrors.Is(err, productRepo.ErrDuplicateName) {
			return nil, errors.SetCustomErrorf(constant.ErrProductExists, "Product with name=[%s] already exists", req.Name)
		}
		logger.Error("[CreateProduct] err productRepo.Create", zap.String("name", req.Name), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[CreateProduct] product created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	s.publish(ctx, constant.ProductCreated, created)
	return model.NewProductResponse(created), nil
}

func (s *productAppImpl) BuyProduct(ctx context.Context, id int64) (*model.ProductResponse, error) {
	affected, err := s.productRepo.DecrementStock(ctx, id)
	if err != nil {
		logger.Error("[BuyProduct] err productRepo.DecrementStock", zap.Int64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if affected == 0 {
		existing, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			logger.Error("[BuyProduct] err productRepo.GetByID", zap.Int64("id", id), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if existing == nil {
			return nil, notFoundByID(id)
		}
		return nil, errors.SetCustomErrorf(constant.ErrInsufficientStock, "Product with id=[%d] is out of stock", id)
	}

	product, err := s.reload(ctx, "BuyProduct", id)
	if err != nil {
		return nil, err
	}

	logger.Info("[BuyProduct] product purchased", zap.Int64("id", id), zap.Int("stock", product.Stock))
	s.publish(ctx, constant.ProductPurchased, product)
	if product.Stock == 0 {
		s.publish(ctx, constant.ProductOutOfStock, product)
	}
	return model.NewProductResponse(product), nil
}

func (s *productAppImpl) ChangePrice(ctx context.Context, id int64, price decimal.Decimal) (*model.ProductResponse, error) {
	affected, err := s.productRepo.UpdatePrice(ctx, id, price)
	if err != nil {
		logger.Error("[ChangePrice] err productRepo.UpdatePrice", zap.Int64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if affected == 0 {
		return nil, notFoundByID(id)
	}

	product, err := s.reload(ctx, "ChangePrice", id)
	if err != nil {
		return nil, err
	}

	logger.Info("[ChangePrice] price changed", zap.Int64("id", id), zap.String("price", product.Price.String()))
	s.publish(ctx, constant.ProductPriceChanged, product)
	return model.NewProductResponse(product), nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id int64) error {
	affected, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("[DeleteProduct] err productRepo.Delete", zap.Int64("id", id), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if affected == 0 {
		return notFoundByID(id)
	}

	logger.Info("[DeleteProduct] product deleted", zap.Int64("id", id))
	s.invalidate(ctx, id)
	s.publishEvent(ctx, model.NewProductDeletedEvent(id))
	return nil
}

// reload re-reads a row after a successful update and drops its cache entry.
// The read is not atomic with the update, a concurrent writer may be observed.
// The entry is dropped again after the read so that a FindByID which filled the
// cache with the pre-update row while the update ran does not outlive it.
func (s *productAppImpl) reload(ctx context.Context, op string, id int64) (*model.ProductEntity, error) {
	s.invalidate(ctx, id)

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error(fmt.Sprintf("[%s] err productRepo.GetByID", op), zap.Int64("id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, notFoundByID(id)
	}

	s.invalidate(ctx, id)
	return product, nil
}

func (s *productAppImpl) invalidate(ctx context.Context, id int64) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("[invalidate] err cacheRepo.DeleteProduct", zap.Int64("id", id), zap.String("error", err.Error()))
	}
}

// publish never fails the calling operation.
func (s *productAppImpl) publish(ctx context.Context, eventType constant.ProductEventType, product *model.ProductEntity) {
	if s.publisher == nil {
		return
	}
	s.publishEvent(ctx, model.NewProductEvent(eventType, product))
}

func (s *productAppImpl) publishEvent(ctx context.Context, event model.ProductEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		logger.Error("[publish] err publisher.PublishProductEvent",
			zap.String("type", string(event.Type)),
			zap.Int64("id", event.ProductID),
			zap.String("error", err.Error()),
		)
	}
}
