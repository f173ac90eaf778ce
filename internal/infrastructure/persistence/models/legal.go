package models

import (
	"time"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client entity
type ClientModel struct {
	OwnedModel
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:varchar(255);not null"`
	Email    string `gorm:"type:varchar(255)"`
	Phone    string `gorm:"type:varchar(50)"`
	Document string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
	Notes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity
func (m *ClientModel) ToDomain() *legal.Client {
	return &legal.Client{
		Timestamps:  m.TimestampModel.ToDomain(),
		OwnedEntity: m.Owner(),
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Document:    m.Document,
		Address:     m.Address,
		Notes:       m.Notes,
	}
}

// ClientModelFromDomain creates a persistence model from a domain Client entity
func ClientModelFromDomain(c *legal.Client) *ClientModel {
	m := &ClientModel{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Document: c.Document,
		Address:  c.Address,
		Notes:    c.Notes,
	}
	m.FromDomainOwned(c.Timestamps, c.OwnedEntity)
	return m
}

// CaseModel is the persistence model for the Case entity
type CaseModel struct {
	OwnedModel
	ID          int64            `gorm:"primaryKey;autoIncrement"`
	Title       string           `gorm:"type:varchar(255);not null"`
	Number      string           `gorm:"type:varchar(100);index"`
	Type        string           `gorm:"type:varchar(100)"`
	Court       string           `gorm:"type:varchar(255)"`
	Status      string           `gorm:"type:varchar(50);not null;default:'ativo'"`
	Value       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Description string           `gorm:"type:text"`
	ClientID    int64            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CaseModel) TableName() string {
	return "cases"
}

// ToDomain converts the persistence model to a domain Case entity
func (m *CaseModel) ToDomain() *legal.Case {
	return &legal.Case{
		Timestamps:  m.TimestampModel.ToDomain(),
		OwnedEntity: m.Owner(),
		ID:          m.ID,
		Title:       m.Title,
		Number:      m.Number,
		Type:        m.Type,
		Court:       m.Court,
		Status:      m.Status,
		Value:       m.Value,
		Description: m.Description,
		ClientID:    m.ClientID,
	}
}

// CaseModelFromDomain creates a persistence model from a domain Case entity
func CaseModelFromDomain(c *legal.Case) *CaseModel {
	m := &CaseModel{
		ID:          c.ID,
		Title:       c.Title,
		Number:      c.Number,
		Type:        c.Type,
		Court:       c.Court,
		Status:      c.Status,
		Value:       c.Value,
		Description: c.Description,
		ClientID:    c.ClientID,
	}
	m.FromDomainOwned(c.Timestamps, c.OwnedEntity)
	return m
}

// DeadlineModel is the persistence model for the Deadline entity
type DeadlineModel struct {
	OwnedModel
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	DueDate     time.Time      `gorm:"not null;index"`
	Priority    legal.Priority `gorm:"type:varchar(20);not null;default:'medium'"`
	IsCompleted bool           `gorm:"not null;default:false;index"`
	CaseID      *int64         `gorm:"index"`
}

// TableName returns the table name for GORM
func (DeadlineModel) TableName() string {
	return "deadlines"
}

// ToDomain converts the persistence model to a domain Deadline entity
func (m *DeadlineModel) ToDomain() *legal.Deadline {
	return &legal.Deadline{
		Timestamps:  m.TimestampModel.ToDomain(),
		OwnedEntity: m.Owner(),
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate.UTC(),
		Priority:    m.Priority,
		IsCompleted: m.IsCompleted,
		CaseID:      m.CaseID,
	}
}

// DeadlineModelFromDomain creates a persistence model from a domain Deadline entity
func DeadlineModelFromDomain(d *legal.Deadline) *DeadlineModel {
	m := &DeadlineModel{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		IsCompleted: d.IsCompleted,
		CaseID:      d.CaseID,
	}
	m.FromDomainOwned(d.Timestamps, d.OwnedEntity)
	return m
}

// DocumentModel is the persistence model for the Document entity.
// FileInfo holds the JSON text produced by legal.FileInfo.String.
type DocumentModel struct {
	OwnedModel
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Title        string `gorm:"type:varchar(255);not null"`
	Content      string `gorm:"type:text"`
	FileType     string `gorm:"type:varchar(50);not null"`
	FileInfo     string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(50);not null;default:'draft'"`
	ClientName   string `gorm:"type:varchar(255)"`
	DocumentType string `gorm:"type:varchar(100)"`
	Analysis     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity
func (m *DocumentModel) ToDomain() *legal.Document {
	return &legal.Document{
		Timestamps:   m.TimestampModel.ToDomain(),
		OwnedEntity:  m.Owner(),
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		FileType:     m.FileType,
		FileInfo:     legal.ParseFileInfo(m.FileInfo),
		Status:       m.Status,
		ClientName:   m.ClientName,
		DocumentType: m.DocumentType,
		Analysis:     m.Analysis,
	}
}

// DocumentModelFromDomain creates a persistence model from a domain Document entity
func DocumentModelFromDomain(d *legal.Document) *DocumentModel {
	m := &DocumentModel{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		FileType:     d.FileType,
		FileInfo:     d.FileInfo.String(),
		Status:       d.Status,
		ClientName:   d.ClientName,
		DocumentType: d.DocumentType,
		Analysis:     d.Analysis,
	}
	m.FromDomainOwned(d.Timestamps, d.OwnedEntity)
	return m
}

// AllModels lists every model in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&UserModel{},
		&ClientModel{},
		&CaseModel{},
		&DeadlineModel{},
		&DocumentModel{},
	}
}
