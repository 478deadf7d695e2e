// file: internals/features/school/horarios/grade_base/dto/grade_horario_dto.go
package dto

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	m "minhaescola_backend/internals/features/school/horarios/grade_base/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type EntradaGradeBase struct {
	DiaSemana int    `json:"dia_semana" validate:"required,min=1,max=6"`
	Periodo   int    `json:"periodo"    validate:"required,min=1,max=12"`
	Inicio    string `json:"inicio"     validate:"required,datetime=15:04"`
	Fim       string `json:"fim"        validate:"required,datetime=15:04"`
}

type UpsertGradeBaseRequest struct {
	Turno    string             `json:"turno"    validate:"required,oneof=matutino vespertino noturno"`
	Entradas []EntradaGradeBase `json:"entradas" validate:"required,min=1,max=120,dive"`
}

// Normalize apara strings e ordena as entradas por (dia, período).
// Entradas duplicadas para a mesma célula mantêm a última ocorrência.
func (r *UpsertGradeBaseRequest) Normalize() {
	r.Turno = strings.ToLower(strings.TrimSpace(r.Turno))
	for i := range r.Entradas {
		r.Entradas[i].Inicio = strings.TrimSpace(r.Entradas[i].Inicio)
		r.Entradas[i].Fim = strings.TrimSpace(r.Entradas[i].Fim)
	}

	vistos := make(map[[2]int]int, len(r.Entradas))
	dedup := r.Entradas[:0]
	for _, e := range r.Entradas {
		k := [2]int{e.DiaSemana, e.Periodo}
		if idx, ok := vistos[k]; ok {
			dedup[idx] = e
			continue
		}
		vistos[k] = len(dedup)
		dedup = append(dedup, e)
	}
	r.Entradas = dedup

	sort.Slice(r.Entradas, func(i, j int) bool {
		if r.Entradas[i].DiaSemana != r.Entradas[j].DiaSemana {
			return r.Entradas[i].DiaSemana < r.Entradas[j].DiaSemana
		}
		return r.Entradas[i].Periodo < r.Entradas[j].Periodo
	})
}

// ValidarHorarios confere fim > início ("HH:MM" zero-padded compara bem como string).
func (r *UpsertGradeBaseRequest) ValidarHorarios() error {
	for _, e := range r.Entradas {
		if e.Fim <= e.Inicio {
			return fmt.Errorf("horário inválido no dia %d período %d: fim (%s) deve ser após o início (%s)", e.DiaSemana, e.Periodo, e.Fim, e.Inicio)
		}
	}
	return nil
}

func (r *UpsertGradeBaseRequest) ToModels(escolaID uuid.UUID) []m.GradeHorarioModel {
	out := make([]m.GradeHorarioModel, 0, len(r.Entradas))
	for _, e := range r.Entradas {
		out = append(out, m.GradeHorarioModel{
			GradeHorarioEscolaID:  escolaID,
			GradeHorarioTurno:     r.Turno,
			GradeHorarioDiaSemana: e.DiaSemana,
			GradeHorarioPeriodo:   e.Periodo,
			GradeHorarioInicio:    e.Inicio,
			GradeHorarioFim:       e.Fim,
		})
	}
	return out
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type GradeHorarioResponse struct {
	Turno     string `json:"turno"`
	DiaSemana int    `json:"dia_semana"`
	Periodo   int    `json:"periodo"`
	Inicio    string `json:"inicio"`
	Fim       string `json:"fim"`
}

func FromModel(e *m.GradeHorarioModel) GradeHorarioResponse {
	return GradeHorarioResponse{
		Turno:     e.GradeHorarioTurno,
		DiaSemana: e.GradeHorarioDiaSemana,
		Periodo:   e.GradeHorarioPeriodo,
		Inicio:    e.GradeHorarioInicio,
		Fim:       e.GradeHorarioFim,
	}
}

func FromModels(entradas []m.GradeHorarioModel) []GradeHorarioResponse {
	out := make([]GradeHorarioResponse, 0, len(entradas))
	for i := range entradas {
		out = append(out, FromModel(&entradas[i]))
	}
	return out
}
