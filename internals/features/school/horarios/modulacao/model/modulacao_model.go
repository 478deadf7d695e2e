// internals/features/school/horarios/modulacao/model/modulacao_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ModulacaoModel autoriza um professor a lecionar uma disciplina, numa turma
// específica ou na escola inteira.
//
// O vínculo geral (escola inteira) é gravado com turma = uuid zero, nunca NULL:
// NULL não participaria do índice único e permitiria duplicatas do vínculo geral.
type ModulacaoModel struct {
	ModulacaoID uuid.UUID `gorm:"column:modulacao_id;type:uuid;default:gen_random_uuid();primaryKey" json:"modulacao_id"`

	// tenant scope
	ModulacaoEscolaID uuid.UUID `gorm:"column:modulacao_escola_id;type:uuid;not null;uniqueIndex:uq_modulacoes_chave" json:"modulacao_escola_id"`

	ModulacaoProfessorID  uuid.UUID `gorm:"column:modulacao_professor_id;type:uuid;not null;uniqueIndex:uq_modulacoes_chave"  json:"modulacao_professor_id"`
	ModulacaoDisciplinaID uuid.UUID `gorm:"column:modulacao_disciplina_id;type:uuid;not null;uniqueIndex:uq_modulacoes_chave" json:"modulacao_disciplina_id"`

	// sentinela uuid zero = vínculo para a escola inteira
	ModulacaoTurmaID uuid.UUID `gorm:"column:modulacao_turma_id;type:uuid;not null;default:'00000000-0000-0000-0000-000000000000';uniqueIndex:uq_modulacoes_chave" json:"modulacao_turma_id"`

	// aulas semanais atribuídas neste vínculo
	ModulacaoAulas int `gorm:"column:modulacao_aulas;not null;default:0" json:"modulacao_aulas"`

	// audit
	ModulacaoCreatedAt time.Time `gorm:"column:modulacao_created_at;type:timestamptz;not null;autoCreateTime" json:"modulacao_created_at"`
	ModulacaoUpdatedAt time.Time `gorm:"column:modulacao_updated_at;type:timestamptz;not null;autoUpdateTime" json:"modulacao_updated_at"`
}

func (ModulacaoModel) TableName() string { return "modulacoes" }

// EhGeral indica vínculo válido para qualquer turma da escola.
func (m *ModulacaoModel) EhGeral() bool { return m.ModulacaoTurmaID == uuid.Nil }
