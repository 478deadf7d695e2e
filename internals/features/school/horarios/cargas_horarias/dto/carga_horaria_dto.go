// file: internals/features/school/horarios/cargas_horarias/dto/carga_horaria_dto.go
package dto

import (
	"github.com/google/uuid"

	m "minhaescola_backend/internals/features/school/horarios/cargas_horarias/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type ItemCargaRequest struct {
	DisciplinaID uuid.UUID `json:"disciplina_id" validate:"required"`
	Aulas        int       `json:"aulas"         validate:"min=0,max=60"`
}

// DefinirCargasRequest redefine a lista inteira de cargas da turma
// (substituição transacional: apaga as antigas, grava as novas).
type DefinirCargasRequest struct {
	TurmaID uuid.UUID          `json:"turma_id" validate:"required"`
	Itens   []ItemCargaRequest `json:"itens"    validate:"dive"`
}

// Normalize deduplica por disciplina mantendo a última ocorrência.
func (r *DefinirCargasRequest) Normalize() {
	pos := make(map[uuid.UUID]int, len(r.Itens))
	dedup := r.Itens[:0]
	for _, it := range r.Itens {
		if idx, ok := pos[it.DisciplinaID]; ok {
			dedup[idx] = it
			continue
		}
		pos[it.DisciplinaID] = len(dedup)
		dedup = append(dedup, it)
	}
	r.Itens = dedup
}

func (r *DefinirCargasRequest) ToModels(escolaID uuid.UUID) []m.CargaHorariaModel {
	out := make([]m.CargaHorariaModel, 0, len(r.Itens))
	for _, it := range r.Itens {
		out = append(out, m.CargaHorariaModel{
			CargaHorariaEscolaID:     escolaID,
			CargaHorariaTurmaID:      r.TurmaID,
			CargaHorariaDisciplinaID: it.DisciplinaID,
			CargaHorariaAulas:        it.Aulas,
		})
	}
	return out
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type CargaHorariaResponse struct {
	TurmaID        uuid.UUID `json:"turma_id"`
	DisciplinaID   uuid.UUID `json:"disciplina_id"`
	DisciplinaNome string    `json:"disciplina_nome,omitempty"`
	Aulas          int       `json:"aulas"`
}
