package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shelfwise/catalog-api/internal/model"
	"gorm.io/gorm"
)

// ErrUsernameTaken reports a registration against an already-used
// username.
var ErrUsernameTaken = errors.New("username taken")

type UserRepository interface {
	// Register creates the user together with its default-role profile
	// in one transaction, so no user row can exist without a profile.
	Register(ctx context.Context, user *model.User) (*model.UserProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	SetRole(ctx context.Context, userID uuid.UUID, role model.Role) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Register(ctx context.Context, user *model.User) (*model.UserProfile, error) {
	profile := model.UserProfile{Role: model.RoleMember}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("username = ?", user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Create(user).Error; err != nil {
			// A concurrent registration can still win the race past
			// the pre-check; the unique index reports it.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrUsernameTaken
			}
			return err
		}

		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, "username = ?", username).Error; err != nil {

		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) SetRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
