// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package models

// ═══════════════════════════════════════════════════════════
// REGIONAL HIERARCHY
// island → province → regency → district → village
// ═══════════════════════════════════════════════════════════

// RegencyType distinguishes rural regencies from cities.
type RegencyType string

const (
	RegencyKabupaten RegencyType = "KABUPATEN"
	RegencyKota      RegencyType = "KOTA"
)

type Island struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"not null" json:"name"`
	AltName *string  `json:"altName"`
	Code    *string  `gorm:"uniqueIndex;size:64" json:"code"`
	Lat     *float64 `json:"lat"`
	Long    *float64 `json:"long"`
}

func (Island) TableName() string {
	return "islands"
}

type Province struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	IslandID *uint   `gorm:"index" json:"islandId"`
	Island   *Island `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Capital  *string `json:"capital"`
}

func (Province) TableName() string {
	return "provinces"
}

type Regency struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"not null" json:"name"`
	ProvinceID *uint       `gorm:"index" json:"provinceId"`
	Province   *Province   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Type       RegencyType `gorm:"size:16;not null" json:"type"`
}

func (Regency) TableName() string {
	return "regencies"
}

type District struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	RegencyID *uint    `gorm:"index" json:"regencyId"`
	Regency   *Regency `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (District) TableName() string {
	return "districts"
}

type Village struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	DistrictID *uint     `gorm:"index" json:"districtId"`
	District   *District `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	PostalCode *string   `gorm:"size:16" json:"postalCode"`
}

func (Village) TableName() string {
	return "villages"
}
