package repository

import (
	"context"
	"testing"

	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/testutil"
)

func TestGormUserRepository_Register_CreatesUserWithProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormUserRepository(db)

	user := model.User{
		Username:     "ada",
		PasswordHash: "not-a-real-hash",
	}

	profile, err := repo.Register(context.Background(), &user)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.Role != model.RoleMember {
		t.Errorf("expected default role %q, got %q", model.RoleMember, profile.Role)
	}

	stored, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Profile.UserID != user.ID {
		t.Errorf("expected profile bound to user %s, got %s", user.ID, stored.Profile.UserID)
	}
}

func TestGormUserRepository_Register_UsernameTaken(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormUserRepository(db)

	first := model.User{Username: "ada", PasswordHash: "hash-one"}
	if _, err := repo.Register(context.Background(), &first); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	second := model.User{Username: "ada", PasswordHash: "hash-two"}
	_, err := repo.Register(context.Background(), &second)
	if err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	var users int64
	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	var profiles int64
	if err := db.Model(&model.UserProfile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if users != 1 || profiles != 1 {
		t.Fatalf("expected 1 user and 1 profile, got %d and %d", users, profiles)
	}
}
