// internals/features/school/cadastros/model/turma_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurmaModel struct {
	TurmaID uuid.UUID `gorm:"column:turma_id;type:uuid;default:gen_random_uuid();primaryKey" json:"turma_id"`

	// tenant scope
	TurmaEscolaID uuid.UUID `gorm:"column:turma_escola_id;type:uuid;not null;index" json:"turma_escola_id"`

	TurmaNome  string `gorm:"column:turma_nome;type:varchar(120);not null"  json:"turma_nome"`
	TurmaTurno string `gorm:"column:turma_turno;type:varchar(12);not null;index" json:"turma_turno"`
	TurmaSerie string `gorm:"column:turma_serie;type:varchar(60)"          json:"turma_serie,omitempty"`
	TurmaAtiva bool   `gorm:"column:turma_ativa;not null;default:true"     json:"turma_ativa"`

	// audit
	TurmaCreatedAt time.Time      `gorm:"column:turma_created_at;type:timestamptz;not null;autoCreateTime" json:"turma_created_at"`
	TurmaUpdatedAt time.Time      `gorm:"column:turma_updated_at;type:timestamptz;not null;autoUpdateTime" json:"turma_updated_at"`
	TurmaDeletedAt gorm.DeletedAt `gorm:"column:turma_deleted_at;index"                                    json:"turma_deleted_at,omitempty"`
}

func (TurmaModel) TableName() string { return "turmas" }
