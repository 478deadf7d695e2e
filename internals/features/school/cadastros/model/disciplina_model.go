// internals/features/school/cadastros/model/disciplina_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisciplinaModel struct {
	DisciplinaID uuid.UUID `gorm:"column:disciplina_id;type:uuid;default:gen_random_uuid();primaryKey" json:"disciplina_id"`

	// tenant scope
	DisciplinaEscolaID uuid.UUID `gorm:"column:disciplina_escola_id;type:uuid;not null;index" json:"disciplina_escola_id"`

	DisciplinaNome string `gorm:"column:disciplina_nome;type:varchar(160);not null" json:"disciplina_nome"`

	// carga padrão sugerida (aulas semanais) quando a turma não define a própria
	DisciplinaCarga int  `gorm:"column:disciplina_carga;not null;default:0"    json:"disciplina_carga"`
	DisciplinaAtiva bool `gorm:"column:disciplina_ativa;not null;default:true" json:"disciplina_ativa"`

	// audit
	DisciplinaCreatedAt time.Time      `gorm:"column:disciplina_created_at;type:timestamptz;not null;autoCreateTime" json:"disciplina_created_at"`
	DisciplinaUpdatedAt time.Time      `gorm:"column:disciplina_updated_at;type:timestamptz;not null;autoUpdateTime" json:"disciplina_updated_at"`
	DisciplinaDeletedAt gorm.DeletedAt `gorm:"column:disciplina_deleted_at;index"                                    json:"disciplina_deleted_at,omitempty"`
}

func (DisciplinaModel) TableName() string { return "disciplinas" }
