// file: internals/features/school/horarios/disponibilidades/dto/disponibilidade_dto.go
package dto

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"minhaescola_backend/internals/constants"
	m "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
)

// Teto de exceções por dia; o excedente é descartado silenciosamente.
const MaxExcecoesPorDia = 20

/* =========================================================
   1) REQUESTS
   ========================================================= */

type ExcecaoRequest struct {
	Periodo int    `json:"periodo" validate:"required,min=1,max=12"`
	Status  string `json:"status"  validate:"required"`
}

type UpsertDisponibilidadeRequest struct {
	ProfessorID  uuid.UUID        `json:"professor_id" validate:"required"`
	Turno        string           `json:"turno"        validate:"required,oneof=matutino vespertino noturno"`
	DiaSemana    int              `json:"dia_semana"   validate:"required,min=1,max=6"`
	StatusPadrao string           `json:"status_padrao"`
	Excecoes     []ExcecaoRequest `json:"excecoes" validate:"omitempty,dive"`
}

// Normalize sanitiza o payload inteiro:
//   - status desconhecido vira "livre" (padrão e exceções)
//   - exceções duplicadas para o mesmo período mantêm a ÚLTIMA
//   - lista limitada a MaxExcecoesPorDia, ordenada por período
func (r *UpsertDisponibilidadeRequest) Normalize() {
	r.Turno = strings.ToLower(strings.TrimSpace(r.Turno))
	r.StatusPadrao = constants.NormalizarStatusDisponibilidade(strings.ToLower(strings.TrimSpace(r.StatusPadrao)))

	porPeriodo := make(map[int]string, len(r.Excecoes))
	ordem := make([]int, 0, len(r.Excecoes))
	for _, e := range r.Excecoes {
		st := constants.NormalizarStatusDisponibilidade(strings.ToLower(strings.TrimSpace(e.Status)))
		if _, ok := porPeriodo[e.Periodo]; !ok {
			ordem = append(ordem, e.Periodo)
		}
		porPeriodo[e.Periodo] = st
	}
	sort.Ints(ordem)
	if len(ordem) > MaxExcecoesPorDia {
		ordem = ordem[:MaxExcecoesPorDia]
	}

	out := make([]ExcecaoRequest, 0, len(ordem))
	for _, p := range ordem {
		out = append(out, ExcecaoRequest{Periodo: p, Status: porPeriodo[p]})
	}
	r.Excecoes = out
}

func (r *UpsertDisponibilidadeRequest) ToModel(escolaID uuid.UUID) (*m.DisponibilidadeModel, error) {
	excecoes := make([]m.ExcecaoPeriodo, 0, len(r.Excecoes))
	for _, e := range r.Excecoes {
		excecoes = append(excecoes, m.ExcecaoPeriodo{Periodo: e.Periodo, Status: e.Status})
	}
	raw, err := json.Marshal(excecoes)
	if err != nil {
		return nil, err
	}
	return &m.DisponibilidadeModel{
		DisponibilidadeEscolaID:     escolaID,
		DisponibilidadeProfessorID:  r.ProfessorID,
		DisponibilidadeTurno:        r.Turno,
		DisponibilidadeDiaSemana:    r.DiaSemana,
		DisponibilidadeStatusPadrao: r.StatusPadrao,
		DisponibilidadeExcecoes:     datatypes.JSON(raw),
	}, nil
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type DisponibilidadeResponse struct {
	ProfessorID  uuid.UUID          `json:"professor_id"`
	Turno        string             `json:"turno"`
	DiaSemana    int                `json:"dia_semana"`
	StatusPadrao string             `json:"status_padrao"`
	Excecoes     []m.ExcecaoPeriodo `json:"excecoes"`
}

func FromModel(d *m.DisponibilidadeModel) DisponibilidadeResponse {
	excecoes := d.Excecoes()
	if excecoes == nil {
		excecoes = []m.ExcecaoPeriodo{}
	}
	return DisponibilidadeResponse{
		ProfessorID:  d.DisponibilidadeProfessorID,
		Turno:        d.DisponibilidadeTurno,
		DiaSemana:    d.DisponibilidadeDiaSemana,
		StatusPadrao: d.DisponibilidadeStatusPadrao,
		Excecoes:     excecoes,
	}
}

// PadraoPara representa um dia sem registro: tudo livre.
func PadraoPara(professorID uuid.UUID, turno string, diaSemana int) DisponibilidadeResponse {
	return DisponibilidadeResponse{
		ProfessorID:  professorID,
		Turno:        turno,
		DiaSemana:    diaSemana,
		StatusPadrao: constants.DisponibilidadeLivre,
		Excecoes:     []m.ExcecaoPeriodo{},
	}
}
