// internals/features/school/horarios/grade/model/grade_resultado_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GradeResultadoModel é a raiz de agregação de uma grade por (escola, turno).
// Existem no máximo duas linhas vivas por chave: uma DRAFT (mesa de trabalho)
// e uma PUBLISHED (cópia imutável do momento da publicação). A cópia é sempre
// DRAFT → PUBLISHED, nunca o contrário.
type GradeResultadoModel struct {
	GradeResultadoID uuid.UUID `gorm:"column:grade_resultado_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_resultado_id"`

	// tenant scope
	GradeResultadoEscolaID uuid.UUID `gorm:"column:grade_resultado_escola_id;type:uuid;not null;uniqueIndex:uq_grade_resultados_vigente" json:"grade_resultado_escola_id"`

	GradeResultadoTurno  string `gorm:"column:grade_resultado_turno;type:varchar(12);not null;uniqueIndex:uq_grade_resultados_vigente" json:"grade_resultado_turno"`
	GradeResultadoStatus string `gorm:"column:grade_resultado_status;type:varchar(12);not null;uniqueIndex:uq_grade_resultados_vigente" json:"grade_resultado_status"` // DRAFT | PUBLISHED

	GradeResultadoVersao      int        `gorm:"column:grade_resultado_versao;not null;default:1"          json:"grade_resultado_versao"`
	GradeResultadoDescricao   *string    `gorm:"column:grade_resultado_descricao;type:text"                json:"grade_resultado_descricao,omitempty"`
	GradeResultadoPublicadaEm *time.Time `gorm:"column:grade_resultado_publicada_em;type:timestamptz"      json:"grade_resultado_publicada_em,omitempty"`

	// snapshot de totais no momento da publicação (JSONB)
	GradeResultadoResumo datatypes.JSON `gorm:"column:grade_resultado_resumo;type:jsonb" json:"grade_resultado_resumo,omitempty"`

	// audit
	GradeResultadoCreatedAt time.Time `gorm:"column:grade_resultado_created_at;type:timestamptz;not null;autoCreateTime" json:"grade_resultado_created_at"`
	GradeResultadoUpdatedAt time.Time `gorm:"column:grade_resultado_updated_at;type:timestamptz;not null;autoUpdateTime" json:"grade_resultado_updated_at"`
}

func (GradeResultadoModel) TableName() string { return "grade_resultados" }

// ResumoPublicacao é o conteúdo do snapshot JSONB gravado ao publicar.
type ResumoPublicacao struct {
	TotalSlots      int            `json:"total_slots"`
	SlotsTravados   int            `json:"slots_travados"`
	SlotsPorTurma   map[string]int `json:"slots_por_turma,omitempty"`
	ProfessoresDist int            `json:"professores_distintos"`
}

// Resumo decodifica o snapshot; conteúdo inválido vira zero.
func (m *GradeResultadoModel) Resumo() ResumoPublicacao {
	var out ResumoPublicacao
	if len(m.GradeResultadoResumo) == 0 {
		return out
	}
	_ = json.Unmarshal(m.GradeResultadoResumo, &out)
	return out
}
