package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/server/repositories/users"
)

func TestRotate_Success(t *testing.T) {
	repo := &fakeUsersRepo{getOut: adminUser(t, "old-password"), updateOK: true}
	s := NewPasswordService(repo, discardLogger())

	res, err := s.Rotate(context.Background(), 1, 16)
	if err != nil {
		t.Fatalf("Rotate error: %v", err)
	}
	if res.UserID != 1 {
		t.Fatalf("UserID = %d, want 1", res.UserID)
	}
	if len(res.Password) != 16 {
		t.Fatalf("password length = %d, want 16", len(res.Password))
	}
	if repo.updateCalls != 1 {
		t.Fatalf("UpdatePasswordHash called %d times", repo.updateCalls)
	}
	if repo.gotHash == "" || repo.gotHash == res.Password {
		t.Fatalf("stored value must be a hash, got %q", repo.gotHash)
	}
	if !strings.HasPrefix(repo.gotHash, "$2") {
		t.Fatalf("expected a bcrypt digest, got %q", repo.gotHash)
	}
}

func TestRotate_UserNotFound(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := NewPasswordService(repo, discardLogger())

	_, err := s.Rotate(context.Background(), 404, 16)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("no update must happen for an unknown user")
	}
}

func TestRotate_UpdateMatchedNoRows(t *testing.T) {
	repo := &fakeUsersRepo{getOut: adminUser(t, "old-password"), updateOK: false}
	s := NewPasswordService(repo, discardLogger())

	_, err := s.Rotate(context.Background(), 1, 16)
	if !errors.Is(err, common.ErrUpdateConflict) {
		t.Fatalf("want common.ErrUpdateConflict, got %v", err)
	}
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("conflict must stay distinct, got %v", err)
	}
}

func TestRotate_StorageFailurePropagates(t *testing.T) {
	repo := &fakeUsersRepo{getOut: adminUser(t, "old-password"), updateErr: common.ErrStorageUnavailable}
	s := NewPasswordService(repo, discardLogger())

	_, err := s.Rotate(context.Background(), 1, 16)
	if !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("want common.ErrStorageUnavailable, got %v", err)
	}
}

func TestRotate_InvalidLength(t *testing.T) {
	repo := &fakeUsersRepo{getOut: adminUser(t, "old-password"), updateOK: true}
	s := NewPasswordService(repo, discardLogger())

	_, err := s.Rotate(context.Background(), 1, 0)
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want common.ErrValidation, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("no update must happen when generation fails")
	}
}

// End-to-end over the reference adapter: after a rotation the new password
// logs in and the old one no longer does.
func TestRotate_ThenLogin(t *testing.T) {
	store := users.NewInMemoryRepository()
	u := adminUser(t, "old-password")
	store.Seed(*u)

	rotator := NewPasswordService(store, discardLogger())
	authsvc := NewAuthService(store, testIssuer(), discardLogger())

	res, err := rotator.Rotate(context.Background(), u.ID, 16)
	if err != nil {
		t.Fatalf("Rotate error: %v", err)
	}

	if _, err := authsvc.Login(context.Background(), "admin", res.Password); err != nil {
		t.Fatalf("login with rotated password failed: %v", err)
	}
	if _, err := authsvc.Login(context.Background(), "admin", "old-password"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}
