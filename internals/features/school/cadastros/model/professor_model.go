// internals/features/school/cadastros/model/professor_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProfessorModel struct {
	ProfessorID uuid.UUID `gorm:"column:professor_id;type:uuid;default:gen_random_uuid();primaryKey" json:"professor_id"`

	// tenant scope
	ProfessorEscolaID uuid.UUID `gorm:"column:professor_escola_id;type:uuid;not null;index" json:"professor_escola_id"`

	ProfessorNome  string `gorm:"column:professor_nome;type:varchar(160);not null" json:"professor_nome"`
	ProfessorAtivo bool   `gorm:"column:professor_ativo;not null;default:true"     json:"professor_ativo"`

	// oferta semanal de horas e turnos em que atua
	ProfessorCargaHoraria int            `gorm:"column:professor_carga_horaria;not null;default:0" json:"professor_carga_horaria"`
	ProfessorTurnos       pq.StringArray `gorm:"column:professor_turnos;type:text[]"               json:"professor_turnos,omitempty"`

	// audit
	ProfessorCreatedAt time.Time      `gorm:"column:professor_created_at;type:timestamptz;not null;autoCreateTime" json:"professor_created_at"`
	ProfessorUpdatedAt time.Time      `gorm:"column:professor_updated_at;type:timestamptz;not null;autoUpdateTime" json:"professor_updated_at"`
	ProfessorDeletedAt gorm.DeletedAt `gorm:"column:professor_deleted_at;index"                                    json:"professor_deleted_at,omitempty"`
}

func (ProfessorModel) TableName() string { return "professores" }
