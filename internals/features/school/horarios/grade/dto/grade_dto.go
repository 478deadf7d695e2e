// file: internals/features/school/horarios/grade/dto/grade_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "minhaescola_backend/internals/features/school/horarios/grade/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

// CelulaRequest identifica uma célula da grade de uma turma.
type CelulaRequest struct {
	TurmaID   uuid.UUID `json:"turma_id"   validate:"required"`
	DiaSemana int       `json:"dia_semana" validate:"required,min=1,max=6"`
	Periodo   int       `json:"periodo"    validate:"required,min=1,max=12"`
}

// PropostaSlotRequest é o corpo do dry-run e do commit de um slot.
// Origem (opcional) indica a célula que está sendo desocupada num arraste.
type PropostaSlotRequest struct {
	Turno        string         `json:"turno"         validate:"required,oneof=matutino vespertino noturno"`
	TurmaID      uuid.UUID      `json:"turma_id"      validate:"required"`
	DiaSemana    int            `json:"dia_semana"    validate:"required,min=1,max=6"`
	Periodo      int            `json:"periodo"       validate:"required,min=1,max=12"`
	DisciplinaID uuid.UUID      `json:"disciplina_id" validate:"required"`
	ProfessorID  uuid.UUID      `json:"professor_id"  validate:"required"`
	Travar       *bool          `json:"travar"`
	Origem       *CelulaRequest `json:"origem" validate:"omitempty"`
}

func (r *PropostaSlotRequest) Normalize() {
	r.Turno = strings.ToLower(strings.TrimSpace(r.Turno))
}

type RemoverSlotRequest struct {
	Turno     string    `json:"turno"      validate:"required,oneof=matutino vespertino noturno"`
	TurmaID   uuid.UUID `json:"turma_id"   validate:"required"`
	DiaSemana int       `json:"dia_semana" validate:"required,min=1,max=6"`
	Periodo   int       `json:"periodo"    validate:"required,min=1,max=12"`
}

// MoverSlotRequest move a aula da origem para o destino numa única transação.
// A atribuição (disciplina, professor) viaja com a origem.
type MoverSlotRequest struct {
	Turno   string        `json:"turno"   validate:"required,oneof=matutino vespertino noturno"`
	Origem  CelulaRequest `json:"origem"  validate:"required"`
	Destino CelulaRequest `json:"destino" validate:"required"`
}

type TravaSlotRequest struct {
	Turno     string    `json:"turno"      validate:"required,oneof=matutino vespertino noturno"`
	TurmaID   uuid.UUID `json:"turma_id"   validate:"required"`
	DiaSemana int       `json:"dia_semana" validate:"required,min=1,max=6"`
	Periodo   int       `json:"periodo"    validate:"required,min=1,max=12"`
}

// SlotLoteRequest é um slot na substituição integral do rascunho.
type SlotLoteRequest struct {
	TurmaID      uuid.UUID `json:"turma_id"      validate:"required"`
	DiaSemana    int       `json:"dia_semana"    validate:"required,min=1,max=6"`
	Periodo      int       `json:"periodo"       validate:"required,min=1,max=12"`
	DisciplinaID uuid.UUID `json:"disciplina_id" validate:"required"`
	ProfessorID  uuid.UUID `json:"professor_id"  validate:"required"`
	Travado      bool      `json:"travado"`
}

// SubstituirGradeRequest troca o conteúdo inteiro do rascunho do turno.
type SubstituirGradeRequest struct {
	Turno string            `json:"turno" validate:"required,oneof=matutino vespertino noturno"`
	Slots []SlotLoteRequest `json:"slots" validate:"dive"`
}

type PublicarRequest struct {
	Turno     string  `json:"turno"     validate:"required,oneof=matutino vespertino noturno"`
	Descricao *string `json:"descricao" validate:"omitempty,max=500"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

// VereditoResponse é o resultado de um dry-run: aceito, ou o primeiro código
// de rejeição na ordem fixa das regras.
type VereditoResponse struct {
	OK       bool   `json:"ok"`
	Codigo   string `json:"codigo,omitempty"`
	Mensagem string `json:"mensagem,omitempty"`
}

type GradeSlotResponse struct {
	TurmaID      uuid.UUID  `json:"turma_id"`
	DiaSemana    int        `json:"dia_semana"`
	Periodo      int        `json:"periodo"`
	DisciplinaID uuid.UUID  `json:"disciplina_id"`
	ProfessorID  uuid.UUID  `json:"professor_id"`
	Travado      bool       `json:"travado"`
	TravadoPor   *uuid.UUID `json:"travado_por,omitempty"`
	TravadoEm    *time.Time `json:"travado_em,omitempty"`
	Origem       string     `json:"origem"`
}

func FromSlotModel(s *m.GradeSlotModel) GradeSlotResponse {
	return GradeSlotResponse{
		TurmaID:      s.GradeSlotTurmaID,
		DiaSemana:    s.GradeSlotDiaSemana,
		Periodo:      s.GradeSlotPeriodo,
		DisciplinaID: s.GradeSlotDisciplinaID,
		ProfessorID:  s.GradeSlotProfessorID,
		Travado:      s.GradeSlotTravado,
		TravadoPor:   s.GradeSlotTravadoPor,
		TravadoEm:    s.GradeSlotTravadoEm,
		Origem:       s.GradeSlotOrigem,
	}
}

func FromSlotModels(slots []m.GradeSlotModel) []GradeSlotResponse {
	out := make([]GradeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, FromSlotModel(&slots[i]))
	}
	return out
}

type GradeResultadoResponse struct {
	GradeResultadoID uuid.UUID           `json:"grade_resultado_id"`
	Turno            string              `json:"turno"`
	Status           string              `json:"status"`
	Versao           int                 `json:"versao"`
	Descricao        *string             `json:"descricao,omitempty"`
	PublicadaEm      *time.Time          `json:"publicada_em,omitempty"`
	Resumo           *m.ResumoPublicacao `json:"resumo,omitempty"`
	Slots            []GradeSlotResponse `json:"slots"`
}

func FromResultadoModel(res *m.GradeResultadoModel, slots []m.GradeSlotModel) GradeResultadoResponse {
	out := GradeResultadoResponse{
		GradeResultadoID: res.GradeResultadoID,
		Turno:            res.GradeResultadoTurno,
		Status:           res.GradeResultadoStatus,
		Versao:           res.GradeResultadoVersao,
		Descricao:        res.GradeResultadoDescricao,
		PublicadaEm:      res.GradeResultadoPublicadaEm,
		Slots:            FromSlotModels(slots),
	}
	if len(res.GradeResultadoResumo) > 0 {
		r := res.Resumo()
		out.Resumo = &r
	}
	return out
}
