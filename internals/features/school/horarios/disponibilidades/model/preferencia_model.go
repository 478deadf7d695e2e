// internals/features/school/horarios/disponibilidades/model/preferencia_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PreferenciaModel guarda preferências pedagógicas do professor por turno.
// São apenas informativas: nenhuma regra de validação da grade bloqueia por
// preferência.
type PreferenciaModel struct {
	PreferenciaID uuid.UUID `gorm:"column:preferencia_id;type:uuid;default:gen_random_uuid();primaryKey" json:"preferencia_id"`

	// tenant scope
	PreferenciaEscolaID uuid.UUID `gorm:"column:preferencia_escola_id;type:uuid;not null;uniqueIndex:uq_preferencias_chave" json:"preferencia_escola_id"`

	PreferenciaProfessorID uuid.UUID `gorm:"column:preferencia_professor_id;type:uuid;not null;uniqueIndex:uq_preferencias_chave" json:"preferencia_professor_id"`
	PreferenciaTurno       string    `gorm:"column:preferencia_turno;type:varchar(12);not null;uniqueIndex:uq_preferencias_chave" json:"preferencia_turno"`

	PreferenciaAulasGeminadas   bool `gorm:"column:preferencia_aulas_geminadas;not null;default:false" json:"preferencia_aulas_geminadas"`
	PreferenciaEvitarJanelas    bool `gorm:"column:preferencia_evitar_janelas;not null;default:false"  json:"preferencia_evitar_janelas"`
	PreferenciaMaxAulasDiaTurma int  `gorm:"column:preferencia_max_aulas_dia_turma;not null;default:0" json:"preferencia_max_aulas_dia_turma"`

	// períodos que o professor prefere não lecionar (int[])
	PreferenciaPeriodosEvitados pq.Int64Array `gorm:"column:preferencia_periodos_evitados;type:integer[]" json:"preferencia_periodos_evitados,omitempty"`

	// audit
	PreferenciaCreatedAt time.Time `gorm:"column:preferencia_created_at;type:timestamptz;not null;autoCreateTime" json:"preferencia_created_at"`
	PreferenciaUpdatedAt time.Time `gorm:"column:preferencia_updated_at;type:timestamptz;not null;autoUpdateTime" json:"preferencia_updated_at"`
}

func (PreferenciaModel) TableName() string { return "preferencias" }
