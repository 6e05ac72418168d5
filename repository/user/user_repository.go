package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/store/model"
	"github.com/muhammadheryan/store/utils/logger"
	"go.uber.org/zap"
)

type SQL struct {
	conn *sqlx.DB
}

// UserRepository is the read-only credential store consulted on every authenticated request.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.UserEntity, error)
	GetRolesByUserID(ctx context.Context, userID int64) ([]string, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	getUserByUsernameQuery = `SELECT id, username, password FROM app_user WHERE username = ?`
	getRolesByUserIDQuery  = `SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`
)

func (s *SQL) GetByUsername(ctx context.Context, username string) (*model.UserEntity, error) {
	logger.Debug("[UserRepository] GetByUsername", zap.String("username", username))

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, getUserByUsernameQuery, username).StructScan(&entity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetRolesByUserID(ctx context.Context, userID int64) ([]string, error) {
	logger.Debug("[UserRepository] GetRolesByUserID", zap.Int64("user_id", userID))

	roles := make([]string, 0)
	if err := s.conn.SelectContext(ctx, &roles, getRolesByUserIDQuery, userID); err != nil {
		return nil, err
	}
	return roles, nil
}
