// internals/features/school/horarios/grade/model/grade_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeSlotModel é uma aula alocada: (turma, dia, período) → (disciplina,
// professor) dentro de um resultado de grade.
//
// Dois índices únicos sustentam as regras de colisão mesmo sob corrida:
//   - uq_grade_slots_turma:     a turma tem no máximo uma aula por instante
//   - uq_grade_slots_professor: o professor dá no máximo uma aula por instante
type GradeSlotModel struct {
	GradeSlotID uuid.UUID `gorm:"column:grade_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_slot_id"`

	// tenant scope
	GradeSlotEscolaID uuid.UUID `gorm:"column:grade_slot_escola_id;type:uuid;not null;index" json:"grade_slot_escola_id"`

	GradeSlotGradeResultadoID uuid.UUID `gorm:"column:grade_slot_grade_resultado_id;type:uuid;not null;uniqueIndex:uq_grade_slots_turma;uniqueIndex:uq_grade_slots_professor" json:"grade_slot_grade_resultado_id"`

	GradeSlotTurmaID     uuid.UUID `gorm:"column:grade_slot_turma_id;type:uuid;not null;uniqueIndex:uq_grade_slots_turma"         json:"grade_slot_turma_id"`
	GradeSlotProfessorID uuid.UUID `gorm:"column:grade_slot_professor_id;type:uuid;not null;uniqueIndex:uq_grade_slots_professor" json:"grade_slot_professor_id"`

	GradeSlotDiaSemana int `gorm:"column:grade_slot_dia_semana;not null;uniqueIndex:uq_grade_slots_turma;uniqueIndex:uq_grade_slots_professor" json:"grade_slot_dia_semana"`
	GradeSlotPeriodo   int `gorm:"column:grade_slot_periodo;not null;uniqueIndex:uq_grade_slots_turma;uniqueIndex:uq_grade_slots_professor"    json:"grade_slot_periodo"`

	GradeSlotDisciplinaID uuid.UUID `gorm:"column:grade_slot_disciplina_id;type:uuid;not null" json:"grade_slot_disciplina_id"`

	// trava com auditoria: quem travou e quando
	GradeSlotTravado    bool       `gorm:"column:grade_slot_travado;not null;default:false"  json:"grade_slot_travado"`
	GradeSlotTravadoPor *uuid.UUID `gorm:"column:grade_slot_travado_por;type:uuid"           json:"grade_slot_travado_por,omitempty"`
	GradeSlotTravadoEm  *time.Time `gorm:"column:grade_slot_travado_em;type:timestamptz"     json:"grade_slot_travado_em,omitempty"`

	// manual | importacao | publicacao
	GradeSlotOrigem string `gorm:"column:grade_slot_origem;type:varchar(16);not null;default:'manual'" json:"grade_slot_origem"`

	// audit
	GradeSlotCreatedAt time.Time `gorm:"column:grade_slot_created_at;type:timestamptz;not null;autoCreateTime" json:"grade_slot_created_at"`
	GradeSlotUpdatedAt time.Time `gorm:"column:grade_slot_updated_at;type:timestamptz;not null;autoUpdateTime" json:"grade_slot_updated_at"`
}

func (GradeSlotModel) TableName() string { return "grade_slots" }
