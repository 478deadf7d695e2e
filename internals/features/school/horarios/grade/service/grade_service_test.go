// internals/features/school/horarios/grade/service/grade_service_test.go
package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
)

/* =======================================================
   MAPEAMENTO DE 23505 → CÓDIGO ESTÁVEL
======================================================= */

func TestMapearErroUnicidade_PgError(t *testing.T) {
	casos := []struct {
		constraint string
		codigo     string
	}{
		{"uq_grade_slots_turma", CodigoTurmaConflito},
		{"uq_grade_slots_professor", CodigoProfessorConflito},
		{"uq_grade_resultados_vigente", "CONFLICT"},
	}
	for _, c := range casos {
		err := mapearErroUnicidade(&pgconn.PgError{Code: "23505", ConstraintName: c.constraint})
		var conflito *ErroConflito
		if !errors.As(err, &conflito) {
			t.Fatalf("%s: esperava ErroConflito, veio %T (%v)", c.constraint, err, err)
		}
		if conflito.Codigo != c.codigo {
			t.Errorf("%s: esperava código %s, veio %s", c.constraint, c.codigo, conflito.Codigo)
		}
	}
}

// O driver atrás de pooler às vezes só entrega texto; o fallback por string
// tem que mapear igual.
func TestMapearErroUnicidade_FallbackPorTexto(t *testing.T) {
	err := mapearErroUnicidade(errors.New(
		`ERROR: duplicate key value violates unique constraint "uq_grade_slots_professor" (SQLSTATE 23505)`))
	var conflito *ErroConflito
	if !errors.As(err, &conflito) || conflito.Codigo != CodigoProfessorConflito {
		t.Fatalf("fallback por texto não mapeou: %v", err)
	}
}

func TestMapearErroUnicidade_OutrosErrosPassamIntactos(t *testing.T) {
	if err := mapearErroUnicidade(nil); err != nil {
		t.Fatalf("nil deveria continuar nil, veio %v", err)
	}

	original := errors.New("connection refused")
	if err := mapearErroUnicidade(original); !errors.Is(err, original) {
		t.Fatalf("erro comum deveria passar intacto, veio %v", err)
	}

	// 23505 de um índice desconhecido não vira código de grade
	desconhecido := &pgconn.PgError{Code: "23505", ConstraintName: "uq_outra_tabela"}
	var conflito *ErroConflito
	if err := mapearErroUnicidade(desconhecido); errors.As(err, &conflito) {
		t.Fatalf("índice alheio não deveria virar ErroConflito, veio %v", err)
	}
}

func TestErroConflito_Error(t *testing.T) {
	e := &ErroConflito{Codigo: CodigoSlotTravado, Mensagem: "a aula está travada"}
	if e.Error() != "a aula está travada" {
		t.Fatalf("Error() deveria devolver a mensagem, veio %q", e.Error())
	}
}

/* =======================================================
   RESUMO DA PUBLICAÇÃO
======================================================= */

func slotDe(turma, professor uuid.UUID, dia, periodo int, travado bool) gradeModel.GradeSlotModel {
	return gradeModel.GradeSlotModel{
		GradeSlotID:          uuid.New(),
		GradeSlotTurmaID:     turma,
		GradeSlotProfessorID: professor,
		GradeSlotDiaSemana:   dia,
		GradeSlotPeriodo:     periodo,
		GradeSlotTravado:     travado,
	}
}

func TestMontarResumo(t *testing.T) {
	slots := []gradeModel.GradeSlotModel{
		slotDe(turmaA, profJoao, 1, 1, false),
		slotDe(turmaA, profJoao, 1, 2, true),
		slotDe(turmaA, profMaria, 2, 1, false),
		slotDe(turmaB, profJoao, 1, 3, true),
	}

	raw, err := montarResumo(slots)
	if err != nil {
		t.Fatalf("montarResumo falhou: %v", err)
	}
	var resumo gradeModel.ResumoPublicacao
	if err := json.Unmarshal(raw, &resumo); err != nil {
		t.Fatalf("resumo não é JSON válido: %v", err)
	}

	if resumo.TotalSlots != 4 || resumo.SlotsTravados != 2 || resumo.ProfessoresDist != 2 {
		t.Fatalf("totais errados: %+v", resumo)
	}
	if resumo.SlotsPorTurma[turmaA.String()] != 3 || resumo.SlotsPorTurma[turmaB.String()] != 1 {
		t.Fatalf("contagem por turma errada: %+v", resumo.SlotsPorTurma)
	}
}

func TestMontarResumo_GradeVazia(t *testing.T) {
	raw, err := montarResumo(nil)
	if err != nil {
		t.Fatalf("montarResumo falhou: %v", err)
	}
	var resumo gradeModel.ResumoPublicacao
	if err := json.Unmarshal(raw, &resumo); err != nil {
		t.Fatalf("resumo não é JSON válido: %v", err)
	}
	if resumo.TotalSlots != 0 || resumo.ProfessoresDist != 0 {
		t.Fatalf("grade vazia deveria zerar o resumo: %+v", resumo)
	}
}
