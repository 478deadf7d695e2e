// file: internals/features/school/horarios/grade_base/dto/grade_horario_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalize_DeduplicaEOrdena(t *testing.T) {
	r := UpsertGradeBaseRequest{
		Turno: "  MATUTINO ",
		Entradas: []EntradaGradeBase{
			{DiaSemana: 2, Periodo: 1, Inicio: "07:00", Fim: "07:50"},
			{DiaSemana: 1, Periodo: 2, Inicio: " 07:50 ", Fim: "08:40"},
			{DiaSemana: 1, Periodo: 1, Inicio: "07:00", Fim: "07:50"},
			{DiaSemana: 1, Periodo: 1, Inicio: "07:10", Fim: "08:00"}, // repete a célula: esta vence
		},
	}
	r.Normalize()

	if r.Turno != "matutino" {
		t.Errorf("turno deveria normalizar para matutino, veio %q", r.Turno)
	}
	if len(r.Entradas) != 3 {
		t.Fatalf("esperava 3 entradas após dedupe, veio %d", len(r.Entradas))
	}
	// ordenadas por (dia, período)
	e := r.Entradas
	if e[0].DiaSemana != 1 || e[0].Periodo != 1 || e[1].DiaSemana != 1 || e[1].Periodo != 2 || e[2].DiaSemana != 2 {
		t.Fatalf("entradas fora de ordem: %+v", e)
	}
	if e[0].Inicio != "07:10" {
		t.Errorf("célula repetida: a última ocorrência deveria vencer, veio %q", e[0].Inicio)
	}
	if e[1].Inicio != "07:50" {
		t.Errorf("horários deveriam sair aparados, veio %q", e[1].Inicio)
	}
}

func TestValidarHorarios_FimDepoisDoInicio(t *testing.T) {
	r := UpsertGradeBaseRequest{Entradas: []EntradaGradeBase{
		{DiaSemana: 1, Periodo: 1, Inicio: "07:00", Fim: "07:50"},
		{DiaSemana: 1, Periodo: 2, Inicio: "07:50", Fim: "08:40"},
	}}
	if err := r.ValidarHorarios(); err != nil {
		t.Fatalf("horários válidos não deveriam falhar: %v", err)
	}
}

func TestValidarHorarios_FimAntesDoInicio(t *testing.T) {
	r := UpsertGradeBaseRequest{Entradas: []EntradaGradeBase{
		{DiaSemana: 3, Periodo: 4, Inicio: "10:00", Fim: "09:10"},
	}}
	if err := r.ValidarHorarios(); err == nil {
		t.Fatal("fim antes do início deveria falhar")
	}
}

func TestValidarHorarios_DuracaoZero(t *testing.T) {
	r := UpsertGradeBaseRequest{Entradas: []EntradaGradeBase{
		{DiaSemana: 3, Periodo: 4, Inicio: "10:00", Fim: "10:00"},
	}}
	if err := r.ValidarHorarios(); err == nil {
		t.Fatal("período de duração zero deveria falhar")
	}
}

func TestToModels_PropagaEscolaETurno(t *testing.T) {
	escolaID := uuid.New()
	r := UpsertGradeBaseRequest{
		Turno:    "noturno",
		Entradas: []EntradaGradeBase{{DiaSemana: 5, Periodo: 3, Inicio: "20:30", Fim: "21:20"}},
	}
	ms := r.ToModels(escolaID)
	if len(ms) != 1 {
		t.Fatalf("esperava 1 modelo, veio %d", len(ms))
	}
	m := ms[0]
	if m.GradeHorarioEscolaID != escolaID || m.GradeHorarioTurno != "noturno" ||
		m.GradeHorarioDiaSemana != 5 || m.GradeHorarioPeriodo != 3 ||
		m.GradeHorarioInicio != "20:30" || m.GradeHorarioFim != "21:20" {
		t.Fatalf("modelo mal montado: %+v", m)
	}
}
