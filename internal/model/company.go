// File: internal/model/company.go
package model

import "time"

// Company 一間登錄的 Meisterbetrieb
type Company struct {
	ID               int       `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description"`
	Category         string    `db:"category" json:"category"`
	Address          string    `db:"address" json:"address"`
	City             string    `db:"city" json:"city"`
	State            string    `db:"state" json:"state"`
	Website          *string   `db:"website" json:"website"`
	Phone            *string   `db:"phone" json:"phone"`
	ImageURL         *string   `db:"image_url" json:"imageUrl"`
	IsMasterVerified bool      `db:"is_master_verified" json:"isMasterVerified"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// CompanyWithRating 查詢時由未刪除的評論即時計算，不落地儲存
type CompanyWithRating struct {
	Company
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// CompanyUpdate 部分更新，nil 欄位保持不變
type CompanyUpdate struct {
	Name             *string
	Description      *string
	Category         *string
	Address          *string
	City             *string
	State            *string
	Website          *string
	Phone            *string
	ImageURL         *string
	IsMasterVerified *bool
}
