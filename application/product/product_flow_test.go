package product_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	appproduct "github.com/muhammadheryan/store/application/product"
	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
	productRepo "github.com/muhammadheryan/store/repository/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryProducts mirrors the SQL repository's contract on a map.
type memoryProducts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.ProductEntity
}

func newMemoryProducts() *memoryProducts {
	return &memoryProducts{nextID: 1, rows: map[int64]model.ProductEntity{}}
}

func (m *memoryProducts) GetByID(ctx context.Context, id int64) (*model.ProductEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryProducts) GetByName(ctx context.Context, name string) (*model.ProductEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.NameNormalized == model.NormalizeName(name) {
			return &row, nil
		}
	}
	return nil, nil
}

func (m *memoryProducts) List(ctx context.Context, offset, limit int) ([]model.ProductEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.ProductEntity
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, m.rows[ids[i]])
	}
	return out, nil
}

func (m *memoryProducts) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.NameNormalized == data.NameNormalized {
			return nil, productRepo.ErrDuplicateName
		}
	}
	row := *data
	row.ID = m.nextID
	m.nextID++
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memoryProducts) DecrementStock(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Stock <= 0 {
		return 0, nil
	}
	row.Stock--
	m.rows[id] = row
	return 1, nil
}

// UpdatePrice counts matched rows, as the MySQL connection does with clientFoundRows=true:
// setting the current price still reports the row.
func (m *memoryProducts) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	row.Price = price
	m.rows[id] = row
	return 1, nil
}

func (m *memoryProducts) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

var _ productRepo.ProductRepository = (*memoryProducts)(nil)

func TestProductApp_PurchaseUntilSoldOut(t *testing.T) {
	ctx := context.Background()
	app := appproduct.NewProductApp(newMemoryProducts(), nil, nil)

	created, err := app.CreateProduct(ctx, &model.CreateProductRequest{Name: "Widget", Price: &price, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = app.CreateProduct(ctx, &model.CreateProductRequest{Name: "widget ", Price: &price, Stock: 1})
	assertErrCode(t, err, constant.ErrProductExists)

	found, err := app.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 5, found.Stock)
	assert.True(t, found.Price.Equal(price))

	for want := 4; want >= 0; want-- {
		got, err := app.BuyProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Stock)
	}

	_, err = app.BuyProduct(ctx, created.ID)
	assertErrCode(t, err, constant.ErrInsufficientStock)

	byName, err := app.FindByName(ctx, "WIDGET")
	require.NoError(t, err)
	assert.Equal(t, 0, byName.Stock)
	assert.True(t, byName.Price.Equal(price))

	require.NoError(t, app.DeleteProduct(ctx, created.ID))
	_, err = app.FindByID(ctx, created.ID)
	assertErrCode(t, err, constant.ErrNotFound)
}

func TestProductApp_ConcurrentPurchasesNeverOversell(t *testing.T) {
	ctx := context.Background()
	app := appproduct.NewProductApp(newMemoryProducts(), nil, nil)

	created, err := app.CreateProduct(ctx, &model.CreateProductRequest{Name: "Gadget", Price: &price, Stock: 10})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := app.BuyProduct(ctx, created.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	got, err := app.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestProductApp_ChangePriceToCurrentValue(t *testing.T) {
	ctx := context.Background()
	app := appproduct.NewProductApp(newMemoryProducts(), nil, nil)

	created, err := app.CreateProduct(ctx, &model.CreateProductRequest{Name: "Widget", Price: &price, Stock: 5})
	require.NoError(t, err)

	same, err := app.ChangePrice(ctx, created.ID, price)
	require.NoError(t, err)
	assert.True(t, same.Price.Equal(price))

	_, err = app.ChangePrice(ctx, created.ID+1, price)
	assertErrCode(t, err, constant.ErrNotFound)
}
