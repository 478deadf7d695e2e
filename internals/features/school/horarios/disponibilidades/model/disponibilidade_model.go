// internals/features/school/horarios/disponibilidades/model/disponibilidade_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"minhaescola_backend/internals/constants"
)

// ExcecaoPeriodo é uma sobrescrita pontual do status padrão do dia.
// A lista é ordenada por período e a última ocorrência de um período vence.
type ExcecaoPeriodo struct {
	Periodo int    `json:"periodo"`
	Status  string `json:"status"`
}

// DisponibilidadeModel guarda, por (professor, turno, dia da semana), o status
// padrão do dia e as exceções por período. Ausência de linha = "livre".
type DisponibilidadeModel struct {
	DisponibilidadeID uuid.UUID `gorm:"column:disponibilidade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"disponibilidade_id"`

	// tenant scope
	DisponibilidadeEscolaID uuid.UUID `gorm:"column:disponibilidade_escola_id;type:uuid;not null;uniqueIndex:uq_disponibilidades_chave" json:"disponibilidade_escola_id"`

	DisponibilidadeProfessorID uuid.UUID `gorm:"column:disponibilidade_professor_id;type:uuid;not null;uniqueIndex:uq_disponibilidades_chave" json:"disponibilidade_professor_id"`
	DisponibilidadeTurno       string    `gorm:"column:disponibilidade_turno;type:varchar(12);not null;uniqueIndex:uq_disponibilidades_chave" json:"disponibilidade_turno"`
	DisponibilidadeDiaSemana   int       `gorm:"column:disponibilidade_dia_semana;not null;uniqueIndex:uq_disponibilidades_chave"             json:"disponibilidade_dia_semana"`

	// livre | indisponivel | evitar
	DisponibilidadeStatusPadrao string `gorm:"column:disponibilidade_status_padrao;type:varchar(16);not null;default:'livre'" json:"disponibilidade_status_padrao"`

	// JSONB ordenado: [{"periodo":1,"status":"indisponivel"}, ...]
	DisponibilidadeExcecoes datatypes.JSON `gorm:"column:disponibilidade_excecoes;type:jsonb" json:"disponibilidade_excecoes,omitempty"`

	// audit
	DisponibilidadeCreatedAt time.Time `gorm:"column:disponibilidade_created_at;type:timestamptz;not null;autoCreateTime" json:"disponibilidade_created_at"`
	DisponibilidadeUpdatedAt time.Time `gorm:"column:disponibilidade_updated_at;type:timestamptz;not null;autoUpdateTime" json:"disponibilidade_updated_at"`
}

func (DisponibilidadeModel) TableName() string { return "disponibilidades" }

// Excecoes decodifica o JSONB; conteúdo inválido vira lista vazia.
func (m *DisponibilidadeModel) Excecoes() []ExcecaoPeriodo {
	if len(m.DisponibilidadeExcecoes) == 0 {
		return nil
	}
	var out []ExcecaoPeriodo
	if err := json.Unmarshal(m.DisponibilidadeExcecoes, &out); err != nil {
		return nil
	}
	return out
}

// ResolverStatus devolve o status efetivo de um período: a exceção vence o
// padrão do dia, e a última exceção para o mesmo período vence as anteriores.
// Sem registro (d == nil) o professor é considerado livre.
func ResolverStatus(d *DisponibilidadeModel, periodo int) string {
	if d == nil {
		return constants.DisponibilidadeLivre
	}
	status := constants.NormalizarStatusDisponibilidade(d.DisponibilidadeStatusPadrao)
	for _, e := range d.Excecoes() {
		if e.Periodo == periodo {
			status = constants.NormalizarStatusDisponibilidade(e.Status)
		}
	}
	return status
}
