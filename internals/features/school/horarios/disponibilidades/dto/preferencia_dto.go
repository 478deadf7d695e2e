// file: internals/features/school/horarios/disponibilidades/dto/preferencia_dto.go
package dto

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type UpsertPreferenciaRequest struct {
	ProfessorID      uuid.UUID `json:"professor_id" validate:"required"`
	Turno            string    `json:"turno"        validate:"required,oneof=matutino vespertino noturno"`
	AulasGeminadas   *bool     `json:"aulas_geminadas"`
	EvitarJanelas    *bool     `json:"evitar_janelas"`
	MaxAulasDiaTurma *int      `json:"max_aulas_dia_turma" validate:"omitempty,min=0,max=12"`
	PeriodosEvitados []int     `json:"periodos_evitados"   validate:"omitempty,max=12,dive,min=1,max=12"`
}

func (r *UpsertPreferenciaRequest) Normalize() {
	r.Turno = strings.ToLower(strings.TrimSpace(r.Turno))

	vistos := map[int]struct{}{}
	dedup := make([]int, 0, len(r.PeriodosEvitados))
	for _, p := range r.PeriodosEvitados {
		if _, ok := vistos[p]; ok {
			continue
		}
		vistos[p] = struct{}{}
		dedup = append(dedup, p)
	}
	sort.Ints(dedup)
	r.PeriodosEvitados = dedup
}

func (r *UpsertPreferenciaRequest) ToModel(escolaID uuid.UUID) *m.PreferenciaModel {
	p := &m.PreferenciaModel{
		PreferenciaEscolaID:    escolaID,
		PreferenciaProfessorID: r.ProfessorID,
		PreferenciaTurno:       r.Turno,
	}
	if r.AulasGeminadas != nil {
		p.PreferenciaAulasGeminadas = *r.AulasGeminadas
	}
	if r.EvitarJanelas != nil {
		p.PreferenciaEvitarJanelas = *r.EvitarJanelas
	}
	if r.MaxAulasDiaTurma != nil {
		p.PreferenciaMaxAulasDiaTurma = *r.MaxAulasDiaTurma
	}
	if len(r.PeriodosEvitados) > 0 {
		arr := make(pq.Int64Array, 0, len(r.PeriodosEvitados))
		for _, v := range r.PeriodosEvitados {
			arr = append(arr, int64(v))
		}
		p.PreferenciaPeriodosEvitados = arr
	}
	return p
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type PreferenciaResponse struct {
	ProfessorID      uuid.UUID `json:"professor_id"`
	Turno            string    `json:"turno"`
	AulasGeminadas   bool      `json:"aulas_geminadas"`
	EvitarJanelas    bool      `json:"evitar_janelas"`
	MaxAulasDiaTurma int       `json:"max_aulas_dia_turma"`
	PeriodosEvitados []int     `json:"periodos_evitados"`
}

func PreferenciaFromModel(p *m.PreferenciaModel) PreferenciaResponse {
	evitados := make([]int, 0, len(p.PreferenciaPeriodosEvitados))
	for _, v := range p.PreferenciaPeriodosEvitados {
		evitados = append(evitados, int(v))
	}
	return PreferenciaResponse{
		ProfessorID:      p.PreferenciaProfessorID,
		Turno:            p.PreferenciaTurno,
		AulasGeminadas:   p.PreferenciaAulasGeminadas,
		EvitarJanelas:    p.PreferenciaEvitarJanelas,
		MaxAulasDiaTurma: p.PreferenciaMaxAulasDiaTurma,
		PeriodosEvitados: evitados,
	}
}
