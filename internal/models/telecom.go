// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package models

import (
	"time"

	"gorm.io/gorm"
)

// NetworkType - radio generation served by a tower
type NetworkType string

const (
	Network2G NetworkType = "2G"
	Network3G NetworkType = "3G"
	Network4G NetworkType = "4G"
	Network5G NetworkType = "5G"
)

// SubscriberStatus - lifecycle state of an MSISDN
type SubscriberStatus string

const (
	SubscriberActive    SubscriberStatus = "active"
	SubscriberInactive  SubscriberStatus = "inactive"
	SubscriberSuspended SubscriberStatus = "suspended"
)

// BtsTower is a cellular base station, optionally located in a village.
type BtsTower struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	CellID         string      `gorm:"not null;index;size:64" json:"cellId"`
	Lac            string      `gorm:"not null;size:64" json:"lac"`
	Mcc            string      `gorm:"not null;size:8" json:"mcc"`
	Mnc            string      `gorm:"not null;size:8" json:"mnc"`
	Lat            float64     `gorm:"not null" json:"lat"`
	Long           float64     `gorm:"not null" json:"long"`
	Address        *string     `json:"address"`
	VillageID      *uint       `gorm:"index" json:"villageId"`
	Village        *Village    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Operator       string      `gorm:"not null;index;size:64" json:"operator"`
	NetworkType    NetworkType `gorm:"not null;size:4" json:"networkType"`
	Height         *int        `json:"height"`
	CoverageRadius *int        `json:"coverageRadius"`
	UpdatedAt      time.Time   `gorm:"index" json:"updatedAt"`
}

func (BtsTower) TableName() string {
	return "bts_towers"
}

// MsisdnRecord is a subscriber identity and the last tower it was seen on.
type MsisdnRecord struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Msisdn         string           `gorm:"uniqueIndex;not null;size:20" json:"msisdn"`
	Imsi           string           `gorm:"not null;size:20" json:"imsi"`
	Imei           string           `gorm:"not null;size:20" json:"imei"`
	Iccid          *string          `gorm:"size:22" json:"iccid"`
	Provider       string           `gorm:"not null;size:64" json:"provider"`
	Status         SubscriberStatus `gorm:"size:16;default:'active'" json:"status"`
	RegisteredName *string          `json:"registeredName"`
	RegisteredNik  *string          `gorm:"size:20" json:"registeredNik"`
	LastBtsID      *uint            `gorm:"index" json:"lastBtsId"`
	LastBts        *BtsTower        `gorm:"foreignKey:LastBtsID;constraint:OnDelete:SET NULL" json:"-"`
	LastActive     time.Time        `json:"lastActive"`
}

func (MsisdnRecord) TableName() string {
	return "msisdn_data"
}

// BeforeCreate - fills defaults the caller left empty
func (m *MsisdnRecord) BeforeCreate(tx *gorm.DB) error {
	if m.LastActive.IsZero() {
		m.LastActive = time.Now()
	}
	if m.Status == "" {
		m.Status = SubscriberActive
	}
	return nil
}

// TowerInfo identifies the tower a subscriber was last seen on.
type TowerInfo struct {
	CellID   string `json:"cellId"`
	Lac      string `json:"lac"`
	Mcc      string `json:"mcc"`
	Mnc      string `json:"mnc"`
	Operator string `json:"operator"`
}

type Location struct {
	Lat       float64    `json:"lat"`
	Long      float64    `json:"long"`
	Address   *string    `json:"address"`
	TowerInfo *TowerInfo `json:"towerInfo"`
}

// Region holds the names along the village → province chain. Any of them
// may be nil when a link in the chain is missing.
type Region struct {
	Village  *string `json:"village"`
	District *string `json:"district"`
	Regency  *string `json:"regency"`
	Province *string `json:"province"`
}

// MsisdnLookup is the subscriber record joined with its tower and region.
type MsisdnLookup struct {
	MsisdnRecord
	Location *Location `json:"location"`
	Region   Region    `json:"region"`
}

// DashboardStats - aggregate counters for the dashboard
type DashboardStats struct {
	TotalBts       int64 `json:"totalBts"`
	TotalMsisdn    int64 `json:"totalMsisdn"`
	ActiveKeys     int64 `json:"activeKeys"`
	RegionsCovered int64 `json:"regionsCovered"`
}
