package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrDuplicateName is returned by Create when name_normalized already exists.
var ErrDuplicateName = errors.New("duplicate product name")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const defaultPreviewLimit = 5

type SQL struct {
	conn         *sqlx.DB
	previewLimit int
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.ProductEntity, error)
	GetByName(ctx context.Context, name string) (*model.ProductEntity, error)
	List(ctx context.Context, offset, limit int) ([]model.ProductEntity, error)
	Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error)
	DecrementStock(ctx context.Context, id int64) (int64, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

func NewProductRepository(conn *sqlx.DB, previewLimit int) ProductRepository {
	if previewLimit <= 0 {
		previewLimit = defaultPreviewLimit
	}
	return &SQL{conn: conn, previewLimit: previewLimit}
}

const (
	productColumns = `id, name, name_normalized, price, stock`

	getProductByIDQuery   = `SELECT ` + productColumns + ` FROM product WHERE id = ?`
	getProductByNameQuery = `SELECT ` + productColumns + ` FROM product WHERE name_normalized = ?`
	listProductsQuery     = `SELECT ` + productColumns + ` FROM product ORDER BY id ASC LIMIT ? OFFSET ?`
	insertProductQuery    = `INSERT INTO product (name, name_normalized, price, stock) VALUES (?, ?, ?, ?)`

	// stock > 0 keeps check and decrement in one statement.
	decrementStockQuery = `UPDATE product SET stock = stock - 1 WHERE id = ? AND stock > 0`
	updatePriceQuery    = `UPDATE product SET price = ? WHERE id = ?`
	deleteProductQuery  = `DELETE FROM product WHERE id = ?`
)

func (s *SQL) GetByID(ctx context.Context, id int64) (*model.ProductEntity, error) {
	defer s.observe("GetByID", time.Now(), zap.Int64("id", id))
	return s.getOne(ctx, getProductByIDQuery, id)
}

func (s *SQL) GetByName(ctx context.Context, name string) (*model.ProductEntity, error) {
	normalized := model.NormalizeName(name)
	defer s.observe("GetByName", time.Now(), zap.String("name_normalized", normalized))
	return s.getOne(ctx, getProductByNameQuery, normalized)
}

func (s *SQL) getOne(ctx context.Context, query string, arg any) (*model.ProductEntity, error) {
	var entity model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, query, arg).StructScan(&entity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, offset, limit int) ([]model.ProductEntity, error) {
	start := time.Now()

	items := make([]model.ProductEntity, 0, limit)
	if err := s.conn.SelectContext(ctx, &items, listProductsQuery, limit, offset); err != nil {
		return nil, err
	}

	s.observe("List", start,
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Int("size", len(items)),
		zap.Strings("preview", s.preview(items)),
	)
	return items, nil
}

func (s *SQL) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
	defer s.observe("Create", time.Now(), zap.String("name", data.Name))

	data.NameNormalized = model.NormalizeName(data.Name)
	result, err := s.conn.ExecContext(ctx, insertProductQuery, data.Name, data.NameNormalized, data.Price, data.Stock)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, mysqlErr.Message)
		}
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = lastID
	return data, nil
}

func (s *SQL) DecrementStock(ctx context.Context, id int64) (int64, error) {
	defer s.observe("DecrementStock", time.Now(), zap.Int64("id", id))
	return s.exec(ctx, decrementStockQuery, id)
}

func (s *SQL) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (int64, error) {
	defer s.observe("UpdatePrice", time.Now(), zap.Int64("id", id), zap.Stringer("price", price))
	return s.exec(ctx, updatePriceQuery, price, id)
}

func (s *SQL) Delete(ctx context.Context, id int64) (int64, error) {
	defer s.observe("Delete", time.Now(), zap.Int64("id", id))
	return s.exec(ctx, deleteProductQuery, id)
}

func (s *SQL) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQL) observe(op string, start time.Time, fields ...zap.Field) {
	fields = append(fields, zap.Duration("duration", time.Since(start)))
	logger.Debug("[ProductRepository] "+op, fields...)
}

func (s *SQL) preview(items []model.ProductEntity) []string {
	n := len(items)
	if n > s.previewLimit {
		n = s.previewLimit
	}
	names := make([]string, 0, n)
	for _, it := range items[:n] {
		names = append(names, fmt.Sprintf("%d:%s", it.ID, it.Name))
	}
	return names
}
