package implementation

import (
	"context"
	"errors"
	"time"

	"edumate-be/internal/entity"
	"edumate-be/internal/mapper"
	"edumate-be/internal/model"
	"edumate-be/internal/repository/contract"
	"edumate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepository{db: db, mapper: mapper.NewUserMapper()}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	row := r.mapper.ToModel(user)
	row.Email = specification.NormalizeEmail(row.Email)

	err := r.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(row)
	return nil
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var row model.User
	err := specification.Chain(r.db.WithContext(ctx), specs...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r *userRepository) UpdateLastSignIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_sign_in_at", at).Error
}
