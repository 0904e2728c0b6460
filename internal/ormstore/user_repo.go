// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package ormstore

import (
	"context"
	"errors"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"github.com/eventcal/eventcal/internal/auth"
)

// UserRepository implements auth.UserRepository on a GORM session.
type UserRepository struct {
	db *gorm.DB
}

// FindByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.AppUser, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_FIND_BY_EMAIL_FAILED").
			With("operation", "find user by email").
			With("email", email).
			Wrap(err)
	}
	return m.toDomain(), nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*auth.AppUser, error) {
	var m userModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_FIND_BY_ID_FAILED").
			With("operation", "find user by id").
			With("id", id).
			Wrap(err)
	}
	return m.toDomain(), nil
}

// FindAllByEmail retrieves users whose email contains the partial,
// case-insensitively like FindByEmail, ordered by id.
func (r *UserRepository) FindAllByEmail(ctx context.Context, partial string) ([]*auth.AppUser, error) {
	var models []userModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) LIKE '%' || LOWER(?) || '%'", partial).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, oops.Code("USER_FIND_ALL_FAILED").
			With("operation", "find users by partial email").
			Wrap(err)
	}

	users := make([]*auth.AppUser, len(models))
	for i := range models {
		users[i] = models[i].toDomain()
	}
	return users, nil
}

// Create stores a new user and returns the store-assigned id. A
// duplicate email yields auth.ErrEmailInUse.
func (r *UserRepository) Create(ctx context.Context, user *auth.AppUser) (int64, error) {
	m := userToModel(user)
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, oops.Code("USER_EMAIL_IN_USE").
			With("email", user.Email).
			Wrap(auth.ErrEmailInUse)
	}
	if err != nil {
		return 0, oops.Code("USER_CREATE_FAILED").
			With("operation", "create user").
			With("email", user.Email).
			Wrap(err)
	}
	user.ID = m.ID
	return m.ID, nil
}

var _ auth.UserRepository = (*UserRepository)(nil)
