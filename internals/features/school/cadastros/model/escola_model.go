// internals/features/school/cadastros/model/escola_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EscolaModel struct {
	EscolaID uuid.UUID `gorm:"column:escola_id;type:uuid;default:gen_random_uuid();primaryKey" json:"escola_id"`

	EscolaNome  string `gorm:"column:escola_nome;type:varchar(160);not null" json:"escola_nome"`
	EscolaAtiva bool   `gorm:"column:escola_ativa;not null;default:true"     json:"escola_ativa"`

	// audit
	EscolaCreatedAt time.Time      `gorm:"column:escola_created_at;type:timestamptz;not null;autoCreateTime" json:"escola_created_at"`
	EscolaUpdatedAt time.Time      `gorm:"column:escola_updated_at;type:timestamptz;not null;autoUpdateTime" json:"escola_updated_at"`
	EscolaDeletedAt gorm.DeletedAt `gorm:"column:escola_deleted_at;index"                                    json:"escola_deleted_at,omitempty"`
}

func (EscolaModel) TableName() string { return "escolas" }
