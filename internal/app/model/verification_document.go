package model

import (
	"time"

	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentBusinessLicense DocumentType = "business_license"
	DocumentIDDocument      DocumentType = "id_document"
	DocumentUtilityBill     DocumentType = "utility_bill"
	DocumentOther           DocumentType = "other"
)

// Valid reports whether t is a known document category.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentBusinessLicense, DocumentIDDocument, DocumentUtilityBill, DocumentOther:
		return true
	}
	return false
}

// VerificationDocument is a piece of evidence attached to a store's
// verification request. Its status is reviewed independently of the store:
// an admin may approve the store without approving every document.
type VerificationDocument struct {
	ID      uint  `gorm:"primarykey" json:"id"`
	StoreID uint  `gorm:"not null;index" json:"store_id"`
	Store   Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	DocumentType DocumentType       `gorm:"type:varchar(50);not null" json:"document_type"`
	DocumentURL  string             `gorm:"type:text;not null" json:"document_url"` // object-storage URL
	Status       VerificationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (VerificationDocument) TableName() string {
	return "verification_documents"
}
