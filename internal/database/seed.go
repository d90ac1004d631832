// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package database

import (
	"context"
	"fmt"
	"log"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// SeedAPIKey is the token of the API key created on first start.
const SeedAPIKey = "sk_live_1234567890abcdef"

// Seed fills an empty database with a small Indonesian reference dataset.
// It only looks at the province count, so a partially seeded database is
// not repaired.
func Seed(ctx context.Context, store storage.Store) error {
	if err := seedOperator(ctx, store); err != nil {
		return err
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("seed: read stats: %w", err)
	}
	if stats.RegionsCovered > 0 {
		return nil
	}

	log.Println("[Seed] Seeding database with Indonesian reference data...")

	java := &models.Island{Name: "Java", Code: strPtr("JAVA"), Lat: floatPtr(-7.6145), Long: floatPtr(110.7122)}
	sumatra := &models.Island{Name: "Sumatra", Code: strPtr("SUMATRA"), Lat: floatPtr(-0.5897), Long: floatPtr(101.3431)}
	for _, island := range []*models.Island{java, sumatra} {
		if err := store.CreateIsland(ctx, island); err != nil {
			return fmt.Errorf("seed island %s: %w", island.Name, err)
		}
	}

	provinces := []*models.Province{
		{Name: "DKI Jakarta", IslandID: &java.ID, Capital: strPtr("Jakarta")},
		{Name: "West Java", IslandID: &java.ID, Capital: strPtr("Bandung")},
	}
	for _, p := range provinces {
		if err := store.CreateProvince(ctx, p); err != nil {
			return fmt.Errorf("seed province %s: %w", p.Name, err)
		}
	}

	tower := &models.BtsTower{
		CellID:         "CID-12345",
		Lac:            "LAC-777",
		Mcc:            "510",
		Mnc:            "10",
		Lat:            -6.1754,
		Long:           106.8272,
		Address:        strPtr("Gambir, Central Jakarta City, Jakarta"),
		Operator:       "Telkomsel",
		NetworkType:    models.Network5G,
		Height:         intPtr(132),
		CoverageRadius: intPtr(5000),
	}
	if err := store.CreateTower(ctx, tower); err != nil {
		return fmt.Errorf("seed tower: %w", err)
	}

	subscribers := []*models.MsisdnRecord{
		{
			Msisdn:         "628120000001",
			Imsi:           "510101234567890",
			Imei:           "358921000000001",
			Provider:       "Telkomsel",
			Status:         models.SubscriberActive,
			RegisteredName: strPtr("Budi Santoso"),
			LastBtsID:      &tower.ID,
		},
		{
			Msisdn:         "628120000002",
			Imsi:           "510109876543210",
			Imei:           "358921000000002",
			Provider:       "Telkomsel",
			Status:         models.SubscriberActive,
			RegisteredName: strPtr("Siti Aminah"),
			LastBtsID:      &tower.ID,
		},
	}
	for _, sub := range subscribers {
		if err := store.CreateMSISDN(ctx, sub); err != nil {
			return fmt.Errorf("seed msisdn %s: %w", sub.Msisdn, err)
		}
	}

	key := &models.APIKey{
		Key:        SeedAPIKey,
		Owner:      "System Admin",
		Status:     models.KeyStatusActive,
		UsageLimit: 10000,
	}
	if err := store.CreateAPIKey(ctx, key); err != nil {
		return fmt.Errorf("seed api key: %w", err)
	}

	err = services.NewAuditService(store).NewSystemLog().
		Entity(models.EntitySystem, "seed").
		Action(models.ActionSeed).
		Save(ctx)
	if err != nil {
		log.Printf("[Seed] WARNING: could not record audit entry: %v", err)
	}

	log.Println("[Seed] Seeding complete")
	return nil
}

// seedOperator creates admin/admin when nobody can sign in yet.
func seedOperator(ctx context.Context, store storage.Store) error {
	count, err := store.CountOperators(ctx)
	if err != nil {
		return fmt.Errorf("seed: count operators: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash default password: %w", err)
	}
	admin := &models.Operator{
		Username:     "admin",
		Email:        strPtr("admin@telco-admin.local"),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := store.CreateOperator(ctx, admin); err != nil {
		return fmt.Errorf("seed operator: %w", err)
	}
	log.Println("[Seed] Created default operator (username: admin, password: admin)")
	log.Println("[Seed] IMPORTANT: change the default password immediately!")
	return nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }
