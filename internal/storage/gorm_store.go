// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormStore implements Store on top of GORM. Open the *gorm.DB with
// TranslateError enabled so unique violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// first loads one row into dest, mapping a miss to ErrNotFound.
func (s *GormStore) first(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := s.conn(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ensureExists turns a dangling parent reference into a ValidationError.
func (s *GormStore) ensureExists(ctx context.Context, model interface{}, id *uint, field string) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := s.conn(ctx).Model(model).Where("id = ?", *id).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if count == 0 {
		return newValidationError(field, fmt.Sprintf("%s %d does not exist", field, *id))
	}
	return nil
}

// exists reports whether any row of model matches column = value.
func (s *GormStore) exists(ctx context.Context, model interface{}, column string, value interface{}) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(model).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}

// insert creates the row and maps a unique violation onto field.
func (s *GormStore) insert(ctx context.Context, value interface{}, field, duplicateMsg string) error {
	err := s.conn(ctx).Create(value).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return newValidationError(field, duplicateMsg)
	}
	return err
}
