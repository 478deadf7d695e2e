// file: internals/features/school/horarios/disponibilidades/dto/disponibilidade_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"

	"minhaescola_backend/internals/constants"
)

func TestNormalize_SaneiaStatusETurno(t *testing.T) {
	r := UpsertDisponibilidadeRequest{
		ProfessorID:  uuid.New(),
		Turno:        "  Matutino ",
		DiaSemana:    2,
		StatusPadrao: "FERIAS",
		Excecoes: []ExcecaoRequest{
			{Periodo: 1, Status: " Indisponivel "},
			{Periodo: 2, Status: "qualquer-coisa"},
		},
	}
	r.Normalize()

	if r.Turno != constants.TurnoMatutino {
		t.Errorf("turno deveria normalizar para matutino, veio %q", r.Turno)
	}
	if r.StatusPadrao != constants.DisponibilidadeLivre {
		t.Errorf("status desconhecido deveria virar livre, veio %q", r.StatusPadrao)
	}
	if r.Excecoes[0].Status != constants.DisponibilidadeIndisponivel {
		t.Errorf("exceção 1: esperava indisponivel, veio %q", r.Excecoes[0].Status)
	}
	if r.Excecoes[1].Status != constants.DisponibilidadeLivre {
		t.Errorf("exceção 2: status desconhecido deveria virar livre, veio %q", r.Excecoes[1].Status)
	}
}

func TestNormalize_DeduplicaEOrdenaExcecoes(t *testing.T) {
	r := UpsertDisponibilidadeRequest{
		Excecoes: []ExcecaoRequest{
			{Periodo: 5, Status: "evitar"},
			{Periodo: 2, Status: "indisponivel"},
			{Periodo: 5, Status: "indisponivel"}, // repete o 5: esta vence
		},
	}
	r.Normalize()

	if len(r.Excecoes) != 2 {
		t.Fatalf("esperava 2 exceções após dedupe, veio %d", len(r.Excecoes))
	}
	if r.Excecoes[0].Periodo != 2 || r.Excecoes[1].Periodo != 5 {
		t.Fatalf("exceções deveriam sair ordenadas por período, veio %+v", r.Excecoes)
	}
	if r.Excecoes[1].Status != constants.DisponibilidadeIndisponivel {
		t.Errorf("período 5: a última ocorrência deveria vencer, veio %q", r.Excecoes[1].Status)
	}
}

func TestNormalize_LimitaExcecoes(t *testing.T) {
	r := UpsertDisponibilidadeRequest{}
	for p := 1; p <= MaxExcecoesPorDia+5; p++ {
		r.Excecoes = append(r.Excecoes, ExcecaoRequest{Periodo: p, Status: "evitar"})
	}
	r.Normalize()

	if len(r.Excecoes) != MaxExcecoesPorDia {
		t.Fatalf("esperava corte em %d exceções, veio %d", MaxExcecoesPorDia, len(r.Excecoes))
	}
}

func TestToModel_SerializaExcecoes(t *testing.T) {
	escolaID := uuid.New()
	r := UpsertDisponibilidadeRequest{
		ProfessorID:  uuid.New(),
		Turno:        "vespertino",
		DiaSemana:    4,
		StatusPadrao: "livre",
		Excecoes:     []ExcecaoRequest{{Periodo: 3, Status: "indisponivel"}},
	}
	m, err := r.ToModel(escolaID)
	if err != nil {
		t.Fatalf("ToModel falhou: %v", err)
	}
	if m.DisponibilidadeEscolaID != escolaID {
		t.Errorf("escola_id não propagado")
	}
	exc := m.Excecoes()
	if len(exc) != 1 || exc[0].Periodo != 3 || exc[0].Status != constants.DisponibilidadeIndisponivel {
		t.Fatalf("excecoes mal serializadas: %+v", exc)
	}
}
