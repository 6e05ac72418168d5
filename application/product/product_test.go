package product_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	appproduct "github.com/muhammadheryan/store/application/product"
	"github.com/muhammadheryan/store/constant"
	productmocks "github.com/muhammadheryan/store/mocks/repository/product"
	redismocks "github.com/muhammadheryan/store/mocks/repository/redis"
	publishermocks "github.com/muhammadheryan/store/mocks/thirdparty/rabbitmq"
	"github.com/muhammadheryan/store/model"
	productRepo "github.com/muhammadheryan/store/repository/product"
	cerr "github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const baseURL = "http://localhost:8080/api/v1/products"

var price = decimal.RequireFromString("9.99")

func widget(id int64, stock int) *model.ProductEntity {
	return &model.ProductEntity{ID: id, Name: "Widget", NameNormalized: "WIDGET", Price: price, Stock: stock}
}

func strPtr(s string) *string { return &s }

func assertErrCode(t *testing.T, err error, want constant.ErrorType) cerr.CustomError {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
	return ce
}

func isEvent(eventType constant.ProductEventType, id int64) interface{} {
	return mock.MatchedBy(func(e model.ProductEvent) bool {
		return e.Type == eventType && e.ProductID == id
	})
}

func TestProductApp_GetPaginatedProducts(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		offset int
		limit  int
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		want     *model.PaginatedProductResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: full first page has next only",
			args: args{offset: 0, limit: 2},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 0, 2).
					Return([]model.ProductEntity{*widget(1, 5), *widget(2, 5)}, nil).
					Once()
			},
			want: &model.PaginatedProductResponse{
				Content: []model.ProductResponse{
					{ID: 1, Name: "Widget", Price: price, Stock: 5},
					{ID: 2, Name: "Widget", Price: price, Stock: 5},
				},
				Offset:   0,
				Limit:    2,
				NextPage: strPtr(baseURL + "?offset=2&limit=2"),
				HasNext:  true,
			},
		},
		{
			name: "success: short middle page has previous only",
			args: args{offset: 3, limit: 5},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 3, 5).
					Return([]model.ProductEntity{*widget(4, 1)}, nil).
					Once()
			},
			want: &model.PaginatedProductResponse{
				Content:     []model.ProductResponse{{ID: 4, Name: "Widget", Price: price, Stock: 1}},
				Offset:      3,
				Limit:       5,
				PrevPage:    strPtr(baseURL + "?offset=0&limit=5"),
				HasPrevious: true,
			},
		},
		{
			name: "success: empty page renders empty content",
			args: args{offset: 100, limit: 10},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 100, 10).Return(nil, nil).Once()
			},
			want: &model.PaginatedProductResponse{
				Content:     []model.ProductResponse{},
				Offset:      100,
				Limit:       10,
				PrevPage:    strPtr(baseURL + "?offset=90&limit=10"),
				HasPrevious: true,
			},
		},
		{
			name: "success: zero limit falls back to default",
			args: args{offset: 0, limit: 0},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 0, appproduct.DefaultLimit).Return([]model.ProductEntity{}, nil).Once()
			},
			want: &model.PaginatedProductResponse{Content: []model.ProductResponse{}, Limit: appproduct.DefaultLimit},
		},
		{
			name: "success: oversized limit is capped",
			args: args{offset: 0, limit: 500},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 0, appproduct.MaxLimit).Return([]model.ProductEntity{}, nil).Once()
			},
			want: &model.PaginatedProductResponse{Content: []model.ProductResponse{}, Limit: appproduct.MaxLimit},
		},
		{
			name:    "error: negative offset never reaches repository",
			args:    args{offset: -1, limit: 10},
			wantErr: true,
			errCode: constant.ErrInvalidOffset,
		},
		{
			name: "error: repository failure",
			args: args{offset: 0, limit: 10},
			mockCall: func(f fields) {
				f.productRepo.On("List", mock.Anything, 0, 10).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{productRepo: productmocks.NewProductRepository(t)}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			app := appproduct.NewProductApp(f.productRepo, nil, nil)
			got, err := app.GetPaginatedProducts(context.Background(), tt.args.offset, tt.args.limit, baseURL)

			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			require.NoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("GetPaginatedProducts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_GetPaginatedProducts_LogsLimitAdjustment(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything, 0, appproduct.MaxLimit).Return([]model.ProductEntity{}, nil).Once()

	_, err := appproduct.NewProductApp(repo, nil, nil).GetPaginatedProducts(context.Background(), 0, 51, baseURL)
	require.NoError(t, err)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(51), warns[0].ContextMap()["requested"])

	infos := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, infos, 1)
	assert.Equal(t, int64(appproduct.MaxLimit), infos[0].ContextMap()["limit"])
}

func TestProductApp_FindByID(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
		cacheRepo   *redismocks.Repository
	}
	tests := []struct {
		name     string
		id       int64
		mockCall func(f fields)
		want     *model.ProductResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: cache hit skips repository",
			id:   1,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(widget(1, 3), nil).Once()
			},
			want: &model.ProductResponse{ID: 1, Name: "Widget", Price: price, Stock: 3},
		},
		{
			name: "success: cache miss reads repository and fills cache",
			id:   1,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(widget(1, 3), nil).Once()
				f.cacheRepo.On("SetProduct", mock.Anything, widget(1, 3)).Return(nil).Once()
			},
			want: &model.ProductResponse{ID: 1, Name: "Widget", Price: price, Stock: 3},
		},
		{
			name: "success: cache errors are ignored",
			id:   1,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(nil, errors.New("redis down")).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(widget(1, 3), nil).Once()
				f.cacheRepo.On("SetProduct", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
			},
			want: &model.ProductResponse{ID: 1, Name: "Widget", Price: price, Stock: 3},
		},
		{
			name: "error: product not found",
			id:   99,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetProduct", mock.Anything, int64(99)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: repository failure",
			id:   1,
			mockCall: func(f fields) {
				f.cacheRepo.On("GetProduct", mock.Anything, int64(1)).Return(nil, nil).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				productRepo: productmocks.NewProductRepository(t),
				cacheRepo:   redismocks.NewRepository(t),
			}
			tt.mockCall(f)

			app := appproduct.NewProductApp(f.productRepo, f.cacheRepo, nil)
			got, err := app.FindByID(context.Background(), tt.id)

			if tt.wantErr {
				ce := assertErrCode(t, err, tt.errCode)
				if tt.errCode == constant.ErrNotFound {
					assert.Equal(t, fmt.Sprintf("Product not found with id=[%d]", tt.id), ce.Error())
				}
				return
			}
			require.NoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FindByID() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_FindByName(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("GetByName", mock.Anything, "widget").Return(widget(1, 3), nil).Once()
	repo.On("GetByName", mock.Anything, "gadget").Return(nil, nil).Once()
	app := appproduct.NewProductApp(repo, nil, nil)

	got, err := app.FindByName(context.Background(), "widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	_, err = app.FindByName(context.Background(), "gadget")
	ce := assertErrCode(t, err, constant.ErrNotFound)
	assert.Equal(t, "Product not found with name=[gadget]", ce.Error())
}

func TestProductApp_CreateProduct(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
		publisher   *publishermocks.ProductEventPublisher
	}
	req := &model.CreateProductRequest{Name: " Widget", Price: &price, Stock: 5}
	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.ProductResponse
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name: "success: echoes input and publishes",
			mockCall: func(f fields) {
				f.productRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.ProductEntity) bool {
					return e.Name == " Widget" && e.NameNormalized == "WIDGET" && e.Price.Equal(price) && e.Stock == 5
				})).Return(func(ctx context.Context, e *model.ProductEntity) (*model.ProductEntity, error) {
					out := *e
					out.ID = 7
					return &out, nil
				}).Once()
				f.publisher.On("PublishProductEvent", mock.Anything, isEvent(constant.ProductCreated, 7)).Return(nil).Once()
			},
			want: &model.ProductResponse{ID: 7, Name: " Widget", Price: price, Stock: 5},
		},
		{
			name: "success: publisher failure does not fail request",
			mockCall: func(f fields) {
				f.productRepo.On("Create", mock.Anything, mock.Anything).
					Return(&model.ProductEntity{ID: 7, Name: " Widget", Price: price, Stock: 5}, nil).Once()
				f.publisher.On("PublishProductEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			want: &model.ProductResponse{ID: 7, Name: " Widget", Price: price, Stock: 5},
		},
		{
			name: "error: duplicate name",
			mockCall: func(f fields) {
				f.productRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: Duplicate entry", productRepo.ErrDuplicateName)).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductExists,
			errMsg:  "Product with name=[ Widget] already exists",
		},
		{
			name: "error: repository failure",
			mockCall: func(f fields) {
				f.productRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				productRepo: productmocks.NewProductRepository(t),
				publisher:   publishermocks.NewProductEventPublisher(t),
			}
			tt.mockCall(f)

			app := appproduct.NewProductApp(f.productRepo, nil, f.publisher)
			got, err := app.CreateProduct(context.Background(), req)

			if tt.wantErr {
				ce := assertErrCode(t, err, tt.errCode)
				if tt.errMsg != "" {
					assert.Equal(t, tt.errMsg, ce.Error())
				}
				return
			}
			require.NoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CreateProduct() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_BuyProduct(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
		cacheRepo   *redismocks.Repository
		publisher   *publishermocks.ProductEventPublisher
	}
	tests := []struct {
		name     string
		id       int64
		mockCall func(f fields)
		want     *model.ProductResponse
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name: "success: stock decremented",
			id:   1,
			mockCall: func(f fields) {
				f.productRepo.On("DecrementStock", mock.Anything, int64(1)).Return(int64(1), nil).Once()
				f.cacheRepo.On("DeleteProduct", mock.Anything, int64(1)).Return(nil).Twice()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(widget(1, 4), nil).Once()
				f.publisher.On("PublishProductEvent", mock.Anything, isEvent(constant.ProductPurchased, 1)).Return(nil).Once()
			},
			want: &model.ProductResponse{ID: 1, Name: "Widget", Price: price, Stock: 4},
		},
		{
			name: "success: last unit also announces out of stock",
			id:   1,
			mockCall: func(f fields) {
				f.productRepo.On("DecrementStock", mock.Anything, int64(1)).Return(int64(1), nil).Once()
				f.cacheRepo.On("DeleteProduct", mock.Anything, int64(1)).Return(nil).Twice()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(widget(1, 0), nil).Once()
				f.publisher.On("PublishProductEvent", mock.Anything, isEvent(constant.ProductPurchased, 1)).Return(nil).Once()
				f.publisher.On("PublishProductEvent", mock.Anything, isEvent(constant.ProductOutOfStock, 1)).Return(nil).Once()
			},
			want: &model.ProductResponse{ID: 1, Name: "Widget", Price: price, Stock: 0},
		},
		{
			name: "error: out of stock",
			id:   1,
			mockCall: func(f fields) {
				f.productRepo.On("DecrementStock", mock.Anything, int64(1)).Return(int64(0), nil).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(1)).Return(widget(1, 0), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
			errMsg:  "Product with id=[1] is out of stock",
		},
		{
			name: "error: product not found",
			id:   42,
			mockCall: func(f fields) {
				f.productRepo.On("DecrementStock", mock.Anything, int64(42)).Return(int64(0), nil).Once()
				f.productRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
			errMsg:  "Product not found with id=[42]",
		},
		{
			name: "error: update failure",
			id:   1,
			mockCall: func(f fields) {
				f.productRepo.On("DecrementStock", mock.Anything, int64(1)).Return(int64(0), errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				productRepo: productmocks.NewProductRepository(t),
				cacheRepo:   redismocks.NewRepository(t),
				publisher:   publishermocks.NewProductEventPublisher(t),
			}
			tt.mockCall(f)

			app := appproduct.NewProductApp(f.productRepo, f.cacheRepo, f.publisher)
			got, err := app.BuyProduct(context.Background(), tt.id)

			if tt.wantErr {
				ce := assertErrCode(t, err, tt.errCode)
				if tt.errMsg != "" {
					assert.Equal(t, tt.errMsg, ce.Error())
				}
				return
			}
			require.NoError(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("BuyProduct() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_ChangePrice(t *testing.T) {
	newPrice := decimal.RequireFromString("12.50")

	t.Run("success: price updated", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		cache := redismocks.NewRepository(t)
		pub := publishermocks.NewProductEventPublisher(t)
		updated := &model.ProductEntity{ID: 1, Name: "Widget", Price: newPrice, Stock: 5}

		repo.On("UpdatePrice", mock.Anything, int64(1), newPrice).Return(int64(1), nil).Once()
		cache.On("DeleteProduct", mock.Anything, int64(1)).Return(nil).Twice()
		repo.On("GetByID", mock.Anything, int64(1)).Return(updated, nil).Once()
		pub.On("PublishProductEvent", mock.Anything, isEvent(constant.ProductPriceChanged, 1)).Return(nil).Once()

		got, err := appproduct.NewProductApp(repo, cache, pub).ChangePrice(context.Background(), 1, newPrice)
		require.NoError(t, err)
		assert.True(t, got.Price.Equal(newPrice))
	})

	t.Run("success: cache entry dropped again after re-read", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		cache := redismocks.NewRepository(t)
		var calls []string

		repo.On("UpdatePrice", mock.Anything, int64(1), newPrice).Return(int64(1), nil).Once()
		cache.On("DeleteProduct", mock.Anything, int64(1)).
			Run(func(args mock.Arguments) { calls = append(calls, "DeleteProduct") }).
			Return(nil).Twice()
		repo.On("GetByID", mock.Anything, int64(1)).
			Run(func(args mock.Arguments) { calls = append(calls, "GetByID") }).
			Return(&model.ProductEntity{ID: 1, Name: "Widget", Price: newPrice, Stock: 5}, nil).Once()

		_, err := appproduct.NewProductApp(repo, cache, nil).ChangePrice(context.Background(), 1, newPrice)
		require.NoError(t, err)
		assert.Equal(t, []string{"DeleteProduct", "GetByID", "DeleteProduct"}, calls)
	})

	t.Run("error: product not found", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		repo.On("UpdatePrice", mock.Anything, int64(9), newPrice).Return(int64(0), nil).Once()

		_, err := appproduct.NewProductApp(repo, nil, nil).ChangePrice(context.Background(), 9, newPrice)
		ce := assertErrCode(t, err, constant.ErrNotFound)
		assert.Equal(t, "Product not found with id=[9]", ce.Error())
	})

	t.Run("error: update failure", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		repo.On("UpdatePrice", mock.Anything, int64(1), newPrice).Return(int64(0), errors.New("db down")).Once()

		_, err := appproduct.NewProductApp(repo, nil, nil).ChangePrice(context.Background(), 1, newPrice)
		assertErrCode(t, err, constant.ErrInternal)
	})
}

func TestProductApp_DeleteProduct(t *testing.T) {
	t.Run("success: deleted", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		cache := redismocks.NewRepository(t)
		pub := publishermocks.NewProductEventPublisher(t)

		repo.On("Delete", mock.Anything, int64(3)).Return(int64(1), nil).Once()
		cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()
		pub.On("PublishProductEvent", mock.Anything, mock.MatchedBy(func(e model.ProductEvent) bool {
			return e.Type == constant.ProductDeleted && e.ProductID == 3 &&
				e.Name == "" && e.Price == nil && e.Stock == nil
		})).Return(nil).Once()

		err := appproduct.NewProductApp(repo, cache, pub).DeleteProduct(context.Background(), 3)
		require.NoError(t, err)
	})

	t.Run("error: product not found", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		repo.On("Delete", mock.Anything, int64(3)).Return(int64(0), nil).Once()

		err := appproduct.NewProductApp(repo, nil, nil).DeleteProduct(context.Background(), 3)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}
