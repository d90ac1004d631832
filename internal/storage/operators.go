package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"
)

func (s *GormStore) GetOperator(ctx context.Context, id uint) (*models.Operator, error) {
	var op models.Operator
	if err := s.first(ctx, &op, "id = ?", id); err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *GormStore) GetOperatorByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var op models.Operator
	if err := s.first(ctx, &op, "username = ?", username); err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *GormStore) CreateOperator(ctx context.Context, op *models.Operator) error {
	if op.Username == "" {
		return newValidationError("username", "username is required")
	}
	if err := s.insert(ctx, op, "username", "username already exists"); err != nil {
		if IsValidation(err) {
			return err
		}
		return fmt.Errorf("create operator: %w", err)
	}
	return nil
}

func (s *GormStore) CountOperators(ctx context.Context) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Operator{}).Count(&count).Error
	return count, err
}

func (s *GormStore) UpsertGoogleOperator(ctx context.Context, info models.GoogleUserInfo, passwordHash string) (*models.Operator, error) {
	var op models.Operator

	err := s.first(ctx, &op, "google_id = ?", info.ID)
	if err == nil {
		if op.AvatarURL != info.Picture {
			op.AvatarURL = info.Picture
			if err := s.conn(ctx).Model(&op).Update("avatar_url", info.Picture).Error; err != nil {
				return nil, fmt.Errorf("update operator avatar: %w", err)
			}
		}
		return &op, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find operator by google id: %w", err)
	}

	// Existing operator with the same email gets the Google account linked.
	err = s.first(ctx, &op, "email = ?", info.Email)
	if err == nil {
		googleID := info.ID
		op.GoogleID = &googleID
		op.AvatarURL = info.Picture
		if err := s.conn(ctx).Save(&op).Error; err != nil {
			return nil, fmt.Errorf("link google account: %w", err)
		}
		return &op, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find operator by email: %w", err)
	}

	email := info.Email
	googleID := info.ID
	op = models.Operator{
		Username:     info.Email,
		Email:        &email,
		PasswordHash: passwordHash,
		GoogleID:     &googleID,
		AvatarURL:    info.Picture,
		IsActive:     true,
	}
	if err := s.CreateOperator(ctx, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *GormStore) SetOperatorPassword(ctx context.Context, id uint, passwordHash string) error {
	res := s.conn(ctx).Model(&models.Operator{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("set operator password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) TouchOperator(ctx context.Context, id uint) error {
	return s.conn(ctx).Model(&models.Operator{}).
		Where("id = ?", id).
		Update("last_seen", time.Now()).Error
}
