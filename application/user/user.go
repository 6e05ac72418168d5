package user

import (
	"context"

	"github.com/muhammadheryan/store/constant"
	"github.com/muhammadheryan/store/model"
	userrepo "github.com/muhammadheryan/store/repository/user"
	"github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const badCredentials = "Bad credentials"

type UserApp interface {
	Authenticate(ctx context.Context, username, password string) (*model.Principal, error)
}

type UserAppImpl struct {
	userRepo userrepo.UserRepository
}

func NewUserApp(userRepo userrepo.UserRepository) UserApp {
	return &UserAppImpl{
		userRepo: userRepo,
	}
}

// Authenticate checks a username/password pair against the stored bcrypt hash.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *UserAppImpl) Authenticate(ctx context.Context, username, password string) (*model.Principal, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("[Authenticate] err userRepo.GetByUsername", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if user == nil {
		logger.Debug("[Authenticate] unknown user", zap.String("username", username))
		return nil, errors.SetCustomErrorf(constant.ErrUnauthorize, badCredentials)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		logger.Debug("[Authenticate] password mismatch", zap.String("username", username))
		return nil, errors.SetCustomErrorf(constant.ErrUnauthorize, badCredentials)
	}

	roles, err := s.userRepo.GetRolesByUserID(ctx, user.ID)
	if err != nil {
		logger.Error("[Authenticate] err userRepo.GetRolesByUserID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.Principal{
		ID:       user.ID,
		Username: user.Username,
		Roles:    roles,
	}, nil
}
