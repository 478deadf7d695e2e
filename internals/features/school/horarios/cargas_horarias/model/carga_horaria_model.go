// internals/features/school/horarios/cargas_horarias/model/carga_horaria_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CargaHorariaModel define quantas aulas semanais de uma disciplina a turma
// deve receber. É o lado da demanda no diagnóstico de capacidade.
type CargaHorariaModel struct {
	CargaHorariaID uuid.UUID `gorm:"column:carga_horaria_id;type:uuid;default:gen_random_uuid();primaryKey" json:"carga_horaria_id"`

	// tenant scope
	CargaHorariaEscolaID uuid.UUID `gorm:"column:carga_horaria_escola_id;type:uuid;not null;uniqueIndex:uq_cargas_horarias_chave" json:"carga_horaria_escola_id"`

	CargaHorariaTurmaID      uuid.UUID `gorm:"column:carga_horaria_turma_id;type:uuid;not null;uniqueIndex:uq_cargas_horarias_chave"      json:"carga_horaria_turma_id"`
	CargaHorariaDisciplinaID uuid.UUID `gorm:"column:carga_horaria_disciplina_id;type:uuid;not null;uniqueIndex:uq_cargas_horarias_chave" json:"carga_horaria_disciplina_id"`

	CargaHorariaAulas int `gorm:"column:carga_horaria_aulas;not null;default:0" json:"carga_horaria_aulas"`

	// audit
	CargaHorariaCreatedAt time.Time `gorm:"column:carga_horaria_created_at;type:timestamptz;not null;autoCreateTime" json:"carga_horaria_created_at"`
	CargaHorariaUpdatedAt time.Time `gorm:"column:carga_horaria_updated_at;type:timestamptz;not null;autoUpdateTime" json:"carga_horaria_updated_at"`
}

func (CargaHorariaModel) TableName() string { return "cargas_horarias" }
