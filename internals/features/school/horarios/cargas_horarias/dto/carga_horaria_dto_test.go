// file: internals/features/school/horarios/cargas_horarias/dto/carga_horaria_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalize_DeduplicaPorDisciplina(t *testing.T) {
	mat := uuid.MustParse("d1d1d1d1-0000-0000-0000-000000000001")
	por := uuid.MustParse("d2d2d2d2-0000-0000-0000-000000000002")

	r := DefinirCargasRequest{
		TurmaID: uuid.New(),
		Itens: []ItemCargaRequest{
			{DisciplinaID: mat, Aulas: 4},
			{DisciplinaID: por, Aulas: 5},
			{DisciplinaID: mat, Aulas: 6}, // repete matemática: esta vence
		},
	}
	r.Normalize()

	if len(r.Itens) != 2 {
		t.Fatalf("esperava 2 itens após dedupe, veio %d", len(r.Itens))
	}
	if r.Itens[0].DisciplinaID != mat || r.Itens[0].Aulas != 6 {
		t.Fatalf("a última ocorrência da disciplina deveria vencer, veio %+v", r.Itens[0])
	}
	if r.Itens[1].DisciplinaID != por || r.Itens[1].Aulas != 5 {
		t.Fatalf("item intacto foi alterado: %+v", r.Itens[1])
	}
}

func TestNormalize_ListaVazia(t *testing.T) {
	r := DefinirCargasRequest{TurmaID: uuid.New()}
	r.Normalize()
	if len(r.Itens) != 0 {
		t.Fatalf("lista vazia deveria continuar vazia, veio %d", len(r.Itens))
	}
}

func TestToModels_PropagaEscolaETurma(t *testing.T) {
	escolaID, turmaID, disc := uuid.New(), uuid.New(), uuid.New()
	r := DefinirCargasRequest{
		TurmaID: turmaID,
		Itens:   []ItemCargaRequest{{DisciplinaID: disc, Aulas: 3}},
	}
	ms := r.ToModels(escolaID)
	if len(ms) != 1 {
		t.Fatalf("esperava 1 modelo, veio %d", len(ms))
	}
	m := ms[0]
	if m.CargaHorariaEscolaID != escolaID || m.CargaHorariaTurmaID != turmaID ||
		m.CargaHorariaDisciplinaID != disc || m.CargaHorariaAulas != 3 {
		t.Fatalf("modelo mal montado: %+v", m)
	}
}
