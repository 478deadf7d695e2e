// file: internals/features/school/horarios/modulacao/dto/modulacao_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

var (
	escolaTeste = uuid.MustParse("00000000-0000-0000-0000-0000000000ee")
	profA       = uuid.MustParse("11111111-0000-0000-0000-000000000001")
	discA       = uuid.MustParse("22222222-0000-0000-0000-000000000001")
	turmaX      = uuid.MustParse("33333333-0000-0000-0000-000000000001")
)

func ptr(s string) *string { return &s }

func TestSanitizarEDeduplicar_LoteSimples(t *testing.T) {
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 4},
	}}
	aceitos, rel := r.SanitizarEDeduplicar(escolaTeste, nil)

	if rel.Processados != 1 || rel.Aceitos != 1 || rel.Duplicados != 0 || len(rel.Rejeitados) != 0 {
		t.Fatalf("relatório inesperado: %+v", rel)
	}
	m := aceitos[0]
	if m.ModulacaoEscolaID != escolaTeste || m.ModulacaoProfessorID != profA ||
		m.ModulacaoDisciplinaID != discA || m.ModulacaoTurmaID != turmaX || m.ModulacaoAulas != 4 {
		t.Fatalf("linha aceita mal montada: %+v", m)
	}
}

// Chave repetida no lote: a última ocorrência vence e o relatório conta a duplicata.
func TestSanitizarEDeduplicar_UltimaOcorrenciaVence(t *testing.T) {
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 4},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 6},
	}}
	aceitos, rel := r.SanitizarEDeduplicar(escolaTeste, nil)

	if rel.Aceitos != 1 || rel.Duplicados != 1 {
		t.Fatalf("esperava 1 aceito e 1 duplicado, veio %+v", rel)
	}
	if aceitos[0].ModulacaoAulas != 6 {
		t.Fatalf("a última ocorrência deveria vencer (6 aulas), veio %d", aceitos[0].ModulacaoAulas)
	}
}

// Turma nula ou vazia é vínculo geral da escola (sentinela uuid zero);
// não colide com o vínculo específico da mesma dupla professor+disciplina.
func TestSanitizarEDeduplicar_TurmaVaziaEhVinculoGeral(t *testing.T) {
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: nil, Aulas: 10},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr("  "), Aulas: 12},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 4},
	}}
	aceitos, rel := r.SanitizarEDeduplicar(escolaTeste, nil)

	// nil e "  " caem na mesma chave geral; o específico é outra chave
	if rel.Aceitos != 2 || rel.Duplicados != 1 {
		t.Fatalf("esperava 2 aceitos e 1 duplicado, veio %+v", rel)
	}
	if aceitos[0].ModulacaoTurmaID != uuid.Nil || aceitos[0].ModulacaoAulas != 12 {
		t.Fatalf("vínculo geral deveria ficar com 12 aulas e turma zero, veio %+v", aceitos[0])
	}
	if aceitos[1].ModulacaoTurmaID != turmaX {
		t.Fatalf("vínculo específico perdido: %+v", aceitos[1])
	}
}

func TestSanitizarEDeduplicar_LinhasInvalidas(t *testing.T) {
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: "nao-é-uuid", DisciplinaID: discA.String(), Aulas: 2},
		{ProfessorID: profA.String(), DisciplinaID: "", Aulas: 2},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr("xyz"), Aulas: 2},
		{ProfessorID: uuid.Nil.String(), DisciplinaID: discA.String(), Aulas: 2},
	}}
	_, rel := r.SanitizarEDeduplicar(escolaTeste, nil)

	if rel.Aceitos != 0 || len(rel.Rejeitados) != 4 {
		t.Fatalf("todas as linhas deveriam cair, veio %+v", rel)
	}
	// o índice aponta a posição original no lote
	for i, rej := range rel.Rejeitados {
		if rej.Indice != i {
			t.Errorf("rejeitado %d com índice %d", i, rej.Indice)
		}
		if rej.Motivo == "" {
			t.Errorf("rejeitado %d sem motivo", i)
		}
	}
}

func TestSanitizarEDeduplicar_AulasForaDaFaixa(t *testing.T) {
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), Aulas: -5},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 1000},
	}}
	aceitos, _ := r.SanitizarEDeduplicar(escolaTeste, nil)

	if aceitos[0].ModulacaoAulas != 0 {
		t.Errorf("aulas negativas deveriam virar 0, veio %d", aceitos[0].ModulacaoAulas)
	}
	if aceitos[1].ModulacaoAulas != MaxAulasPorVinculo {
		t.Errorf("aulas acima do teto deveriam truncar em %d, veio %d", MaxAulasPorVinculo, aceitos[1].ModulacaoAulas)
	}
}

// Ids bem formados mas de outra escola (ou inexistentes) caem na checagem de
// referências, com o índice original preservado.
func TestSanitizarEDeduplicar_ReferenciaDeOutraEscola(t *testing.T) {
	intruso := uuid.MustParse("99999999-0000-0000-0000-000000000009")
	ref := &ReferenciasValidas{
		Professores: map[uuid.UUID]struct{}{profA: {}},
		Disciplinas: map[uuid.UUID]struct{}{discA: {}},
		Turmas:      map[uuid.UUID]struct{}{turmaX: {}},
	}
	r := BulkUpsertModulacaoRequest{Itens: []ItemModulacaoRequest{
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(turmaX.String()), Aulas: 3},
		{ProfessorID: intruso.String(), DisciplinaID: discA.String(), Aulas: 3},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), TurmaID: ptr(intruso.String()), Aulas: 3},
		{ProfessorID: profA.String(), DisciplinaID: discA.String(), Aulas: 3}, // geral: turma não é checada
	}}
	aceitos, rel := r.SanitizarEDeduplicar(escolaTeste, ref)

	if rel.Aceitos != 2 || len(rel.Rejeitados) != 2 {
		t.Fatalf("esperava 2 aceitos e 2 rejeitados, veio %+v", rel)
	}
	if rel.Rejeitados[0].Indice != 1 || rel.Rejeitados[1].Indice != 2 {
		t.Fatalf("índices das rejeições errados: %+v", rel.Rejeitados)
	}
	if aceitos[1].ModulacaoTurmaID != uuid.Nil {
		t.Fatalf("o vínculo geral deveria passar mesmo com checagem de referências")
	}
}
