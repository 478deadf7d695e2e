// internals/features/school/horarios/grade_base/model/grade_horario_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeHorarioModel define uma célula da malha base da grade: para cada turno,
// quais dias e períodos existem e o horário de relógio de cada período.
type GradeHorarioModel struct {
	GradeHorarioID uuid.UUID `gorm:"column:grade_horario_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_horario_id"`

	// tenant scope
	GradeHorarioEscolaID uuid.UUID `gorm:"column:grade_horario_escola_id;type:uuid;not null;uniqueIndex:uq_grade_horarios_chave" json:"grade_horario_escola_id"`

	GradeHorarioTurno     string `gorm:"column:grade_horario_turno;type:varchar(12);not null;uniqueIndex:uq_grade_horarios_chave" json:"grade_horario_turno"`
	GradeHorarioDiaSemana int    `gorm:"column:grade_horario_dia_semana;not null;uniqueIndex:uq_grade_horarios_chave"             json:"grade_horario_dia_semana"` // 1=segunda ... 6=sábado
	GradeHorarioPeriodo   int    `gorm:"column:grade_horario_periodo;not null;uniqueIndex:uq_grade_horarios_chave"                json:"grade_horario_periodo"`   // 1..N

	// horário de relógio "HH:MM"
	GradeHorarioInicio string `gorm:"column:grade_horario_inicio;type:varchar(5);not null" json:"grade_horario_inicio"`
	GradeHorarioFim    string `gorm:"column:grade_horario_fim;type:varchar(5);not null"    json:"grade_horario_fim"`

	// audit
	GradeHorarioCreatedAt time.Time `gorm:"column:grade_horario_created_at;type:timestamptz;not null;autoCreateTime" json:"grade_horario_created_at"`
	GradeHorarioUpdatedAt time.Time `gorm:"column:grade_horario_updated_at;type:timestamptz;not null;autoUpdateTime" json:"grade_horario_updated_at"`
}

func (GradeHorarioModel) TableName() string { return "grade_horarios" }
