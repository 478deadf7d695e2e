//go:build integration

// internals/features/school/horarios/grade/service/grade_service_integration_test.go
//
// Roda contra um Postgres real:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres ..." go test -tags integration ./...
package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"minhaescola_backend/internals/constants"
	database "minhaescola_backend/internals/databases"
	cadastroModel "minhaescola_backend/internals/features/school/cadastros/model"
	dispModel "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
	gradeDto "minhaescola_backend/internals/features/school/horarios/grade/dto"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
	"minhaescola_backend/internals/features/school/horarios/grade/service"
	modulacaoModel "minhaescola_backend/internals/features/school/horarios/modulacao/model"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=postgres dbname=minhaescola_test sslmode=disable TimeZone=America/Sao_Paulo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "não conectou no banco de teste: %v\n", err)
		os.Exit(1)
	}
	if err := database.MigrateAll(testDB); err != nil {
		fmt.Fprintf(os.Stderr, "migração falhou: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

/* =======================================================
   CENÁRIO BASE
======================================================= */

// cenario é uma escola recém criada com duas turmas do matutino, duas
// disciplinas, dois professores e a modulação mínima para os testes:
//   - João:  matemática em qualquer turma (vínculo geral) e português só na 6º A
//   - Maria: português em qualquer turma
//
// João está indisponível na terça (dia 2) no 5º período.
type cenario struct {
	escolaID uuid.UUID
	ator     uuid.UUID

	turmaA uuid.UUID
	turmaB uuid.UUID

	matematica uuid.UUID
	portugues  uuid.UUID

	joao  uuid.UUID
	maria uuid.UUID

	svc *service.GradeService
}

func montarCenario(t *testing.T) (*cenario, func()) {
	t.Helper()

	c := &cenario{ator: uuid.New(), svc: service.NewGradeService(testDB)}

	escola := cadastroModel.EscolaModel{EscolaNome: fmt.Sprintf("Escola Teste %s", uuid.NewString()[:8])}
	if err := testDB.Create(&escola).Error; err != nil {
		t.Fatalf("criar escola: %v", err)
	}
	c.escolaID = escola.EscolaID

	turnos := []string{constants.TurnoMatutino}
	joao := cadastroModel.ProfessorModel{ProfessorEscolaID: c.escolaID, ProfessorNome: "João", ProfessorAtivo: true, ProfessorTurnos: turnos}
	maria := cadastroModel.ProfessorModel{ProfessorEscolaID: c.escolaID, ProfessorNome: "Maria", ProfessorAtivo: true, ProfessorTurnos: turnos}
	if err := testDB.Create(&joao).Error; err != nil {
		t.Fatalf("criar professor: %v", err)
	}
	if err := testDB.Create(&maria).Error; err != nil {
		t.Fatalf("criar professora: %v", err)
	}
	c.joao, c.maria = joao.ProfessorID, maria.ProfessorID

	turmaA := cadastroModel.TurmaModel{TurmaEscolaID: c.escolaID, TurmaNome: "6º A", TurmaTurno: constants.TurnoMatutino, TurmaAtiva: true}
	turmaB := cadastroModel.TurmaModel{TurmaEscolaID: c.escolaID, TurmaNome: "6º B", TurmaTurno: constants.TurnoMatutino, TurmaAtiva: true}
	if err := testDB.Create(&turmaA).Error; err != nil {
		t.Fatalf("criar turma: %v", err)
	}
	if err := testDB.Create(&turmaB).Error; err != nil {
		t.Fatalf("criar turma: %v", err)
	}
	c.turmaA, c.turmaB = turmaA.TurmaID, turmaB.TurmaID

	matematica := cadastroModel.DisciplinaModel{DisciplinaEscolaID: c.escolaID, DisciplinaNome: "Matemática"}
	portugues := cadastroModel.DisciplinaModel{DisciplinaEscolaID: c.escolaID, DisciplinaNome: "Português"}
	if err := testDB.Create(&matematica).Error; err != nil {
		t.Fatalf("criar disciplina: %v", err)
	}
	if err := testDB.Create(&portugues).Error; err != nil {
		t.Fatalf("criar disciplina: %v", err)
	}
	c.matematica, c.portugues = matematica.DisciplinaID, portugues.DisciplinaID

	modulacoes := []modulacaoModel.ModulacaoModel{
		{ModulacaoEscolaID: c.escolaID, ModulacaoProfessorID: c.joao, ModulacaoDisciplinaID: c.matematica, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 20},
		{ModulacaoEscolaID: c.escolaID, ModulacaoProfessorID: c.joao, ModulacaoDisciplinaID: c.portugues, ModulacaoTurmaID: c.turmaA, ModulacaoAulas: 4},
		{ModulacaoEscolaID: c.escolaID, ModulacaoProfessorID: c.maria, ModulacaoDisciplinaID: c.portugues, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 20},
	}
	if err := testDB.Create(&modulacoes).Error; err != nil {
		t.Fatalf("criar modulações: %v", err)
	}

	disp := dispModel.DisponibilidadeModel{
		DisponibilidadeEscolaID:     c.escolaID,
		DisponibilidadeProfessorID:  c.joao,
		DisponibilidadeTurno:        constants.TurnoMatutino,
		DisponibilidadeDiaSemana:    2,
		DisponibilidadeStatusPadrao: constants.DisponibilidadeLivre,
		DisponibilidadeExcecoes:     datatypes.JSON([]byte(`[{"periodo":5,"status":"indisponivel"}]`)),
	}
	if err := testDB.Create(&disp).Error; err != nil {
		t.Fatalf("criar disponibilidade: %v", err)
	}

	cleanup := func() {
		testDB.Unscoped().Where("grade_slot_escola_id = ?", c.escolaID).Delete(&gradeModel.GradeSlotModel{})
		testDB.Unscoped().Where("grade_resultado_escola_id = ?", c.escolaID).Delete(&gradeModel.GradeResultadoModel{})
		testDB.Unscoped().Where("modulacao_escola_id = ?", c.escolaID).Delete(&modulacaoModel.ModulacaoModel{})
		testDB.Unscoped().Where("disponibilidade_escola_id = ?", c.escolaID).Delete(&dispModel.DisponibilidadeModel{})
		testDB.Unscoped().Where("disciplina_escola_id = ?", c.escolaID).Delete(&cadastroModel.DisciplinaModel{})
		testDB.Unscoped().Where("turma_escola_id = ?", c.escolaID).Delete(&cadastroModel.TurmaModel{})
		testDB.Unscoped().Where("professor_escola_id = ?", c.escolaID).Delete(&cadastroModel.ProfessorModel{})
		testDB.Unscoped().Where("escola_id = ?", c.escolaID).Delete(&cadastroModel.EscolaModel{})
	}
	return c, cleanup
}

func (c *cenario) proposta(turma uuid.UUID, dia, periodo int, disciplina, professor uuid.UUID) gradeDto.PropostaSlotRequest {
	return gradeDto.PropostaSlotRequest{
		Turno:        constants.TurnoMatutino,
		TurmaID:      turma,
		DiaSemana:    dia,
		Periodo:      periodo,
		DisciplinaID: disciplina,
		ProfessorID:  professor,
	}
}

// rascunho carrega raiz e slots do DRAFT do matutino.
func (c *cenario) rascunho(t *testing.T) (*gradeModel.GradeResultadoModel, []gradeModel.GradeSlotModel) {
	t.Helper()
	res, slots, err := c.svc.ObterGrade(context.Background(), c.escolaID, constants.TurnoMatutino, constants.GradeStatusDraft)
	if err != nil {
		t.Fatalf("obter rascunho: %v", err)
	}
	return res, slots
}

func exigirConflito(t *testing.T, err error, codigo string) {
	t.Helper()
	var conflito *service.ErroConflito
	if !errors.As(err, &conflito) {
		t.Fatalf("esperava ErroConflito %s, veio %v", codigo, err)
	}
	if conflito.Codigo != codigo {
		t.Fatalf("esperava código %s, veio %s (%s)", codigo, conflito.Codigo, conflito.Mensagem)
	}
}

func boolPtr(b bool) *bool { return &b }

/* =======================================================
   UPSERT
======================================================= */

func TestUpsertSlot_CriaRascunhoEAtualizaNoLugar(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	slot, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.matematica, c.joao))
	if err != nil {
		t.Fatalf("primeiro upsert falhou: %v", err)
	}
	if slot.GradeSlotOrigem != constants.SlotOrigemManual {
		t.Errorf("origem deveria ser manual, veio %q", slot.GradeSlotOrigem)
	}

	res, slots := c.rascunho(t)
	if res == nil || res.GradeResultadoStatus != constants.GradeStatusDraft {
		t.Fatal("o primeiro upsert deveria abrir o rascunho")
	}
	if len(slots) != 1 {
		t.Fatalf("esperava 1 aula no rascunho, veio %d", len(slots))
	}

	// edição direta da mesma célula troca a atribuição sem criar outra linha
	trocado, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.portugues, c.maria))
	if err != nil {
		t.Fatalf("substituição direta falhou: %v", err)
	}
	if trocado.GradeSlotID != slot.GradeSlotID {
		t.Errorf("a linha da célula deveria ser reaproveitada")
	}
	if trocado.GradeSlotProfessorID != c.maria || trocado.GradeSlotDisciplinaID != c.portugues {
		t.Errorf("atribuição não trocou: %+v", trocado)
	}
	if _, slots = c.rascunho(t); len(slots) != 1 {
		t.Fatalf("substituição direta não pode duplicar a célula, veio %d aulas", len(slots))
	}
}

func TestUpsertSlot_Rejeicoes(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.matematica, c.joao)); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	// João já está na 6º A nesse instante
	_, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaB, 1, 1, c.matematica, c.joao))
	exigirConflito(t, err, service.CodigoProfessorConflito)

	// vínculo de português do João vale só para a 6º A
	_, err = c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaB, 3, 1, c.portugues, c.joao))
	exigirConflito(t, err, service.CodigoProfessorNaoPermitido)

	// terça no 5º período o João está indisponível
	_, err = c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 2, 5, c.matematica, c.joao))
	exigirConflito(t, err, service.CodigoIndisponivel)

	// nada disso pode ter sujado o rascunho
	if _, slots := c.rascunho(t); len(slots) != 1 {
		t.Fatalf("rejeições não podem gravar: esperava 1 aula, veio %d", len(slots))
	}
}

/* =======================================================
   SIMULAÇÃO
======================================================= */

func TestSimularProposta_NaoCriaRascunho(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	v, err := c.svc.SimularProposta(ctx, c.escolaID, c.proposta(c.turmaA, 1, 1, c.matematica, c.joao))
	if err != nil {
		t.Fatalf("simulação falhou: %v", err)
	}
	if !v.OK {
		t.Fatalf("proposta limpa deveria passar, veio %s", v.Codigo)
	}

	// sem vínculo: Maria não dá matemática
	v, err = c.svc.SimularProposta(ctx, c.escolaID, c.proposta(c.turmaA, 1, 2, c.matematica, c.maria))
	if err != nil {
		t.Fatalf("simulação falhou: %v", err)
	}
	if v.OK || v.Codigo != service.CodigoProfessorNaoPermitido {
		t.Fatalf("esperava PROFESSOR_NAO_PERMITIDO, veio ok=%v %s", v.OK, v.Codigo)
	}

	if res, _ := c.rascunho(t); res != nil {
		t.Fatal("dry-run não pode abrir rascunho")
	}
}

/* =======================================================
   TRAVA
======================================================= */

func TestTrava_ProtegeAulaEGuardaAuditoria(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.matematica, c.joao)); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	trava := gradeDto.TravaSlotRequest{Turno: constants.TurnoMatutino, TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1}
	travado, err := c.svc.TravarSlot(ctx, c.escolaID, c.ator, trava)
	if err != nil {
		t.Fatalf("travar falhou: %v", err)
	}
	if !travado.GradeSlotTravado || travado.GradeSlotTravadoPor == nil || *travado.GradeSlotTravadoPor != c.ator || travado.GradeSlotTravadoEm == nil {
		t.Fatalf("trava sem auditoria: %+v", travado)
	}

	// travar de novo (outro usuário) não reescreve a auditoria original
	outro := uuid.New()
	deNovo, err := c.svc.TravarSlot(ctx, c.escolaID, outro, trava)
	if err != nil {
		t.Fatalf("travar idempotente falhou: %v", err)
	}
	if *deNovo.GradeSlotTravadoPor != c.ator {
		t.Errorf("auditoria original deveria permanecer, veio %s", deNovo.GradeSlotTravadoPor)
	}

	// travada não sai nem é sobrescrita por outra atribuição
	_, err = c.svc.RemoverSlot(ctx, c.escolaID, gradeDto.RemoverSlotRequest{Turno: constants.TurnoMatutino, TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1})
	exigirConflito(t, err, service.CodigoSlotTravado)
	_, err = c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.portugues, c.maria))
	exigirConflito(t, err, service.CodigoSlotTravado)

	// destravar limpa a auditoria e libera a remoção
	solto, err := c.svc.DestravarSlot(ctx, c.escolaID, c.ator, trava)
	if err != nil {
		t.Fatalf("destravar falhou: %v", err)
	}
	if solto.GradeSlotTravado || solto.GradeSlotTravadoPor != nil || solto.GradeSlotTravadoEm != nil {
		t.Fatalf("destravar deveria limpar a auditoria: %+v", solto)
	}
	removido, err := c.svc.RemoverSlot(ctx, c.escolaID, gradeDto.RemoverSlotRequest{Turno: constants.TurnoMatutino, TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1})
	if err != nil || !removido {
		t.Fatalf("remoção após destravar deveria passar: removido=%v err=%v", removido, err)
	}
}

func TestRemoverSlot_SemRascunhoEhNoOp(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()

	removido, err := c.svc.RemoverSlot(context.Background(), c.escolaID,
		gradeDto.RemoverSlotRequest{Turno: constants.TurnoMatutino, TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1})
	if err != nil {
		t.Fatalf("no-op não deveria errar: %v", err)
	}
	if removido {
		t.Fatal("sem rascunho não há o que remover")
	}
}

/* =======================================================
   MOVER
======================================================= */

func TestMoverSlot_MoveNaMesmaTransacao(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 1, c.matematica, c.joao)); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	movido, err := c.svc.MoverSlot(ctx, c.escolaID, c.ator, gradeDto.MoverSlotRequest{
		Turno:   constants.TurnoMatutino,
		Origem:  gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1},
		Destino: gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 1, Periodo: 3},
	})
	if err != nil {
		t.Fatalf("mover falhou: %v", err)
	}
	if movido.GradeSlotPeriodo != 3 || movido.GradeSlotProfessorID != c.joao {
		t.Fatalf("aula não chegou no destino: %+v", movido)
	}

	_, slots := c.rascunho(t)
	if len(slots) != 1 {
		t.Fatalf("mover tem que liberar a origem: esperava 1 aula, veio %d", len(slots))
	}
	if slots[0].GradeSlotPeriodo != 3 {
		t.Fatalf("origem não foi liberada: %+v", slots[0])
	}

	// origem vazia
	_, err = c.svc.MoverSlot(ctx, c.escolaID, c.ator, gradeDto.MoverSlotRequest{
		Turno:   constants.TurnoMatutino,
		Origem:  gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 4, Periodo: 1},
		Destino: gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 4, Periodo: 2},
	})
	if !errors.Is(err, service.ErrAulaNaoEncontrada) {
		t.Fatalf("esperava ErrAulaNaoEncontrada, veio %v", err)
	}
}

func TestMoverSlot_SemRascunho(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()

	_, err := c.svc.MoverSlot(context.Background(), c.escolaID, c.ator, gradeDto.MoverSlotRequest{
		Turno:   constants.TurnoMatutino,
		Origem:  gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1},
		Destino: gradeDto.CelulaRequest{TurmaID: c.turmaA, DiaSemana: 1, Periodo: 2},
	})
	exigirConflito(t, err, service.CodigoSemRascunho)
}

/* =======================================================
   SUBSTITUIÇÃO INTEGRAL
======================================================= */

func TestSubstituirGrade_PreservaTravadasERejeitaDivergencia(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	travar := c.proposta(c.turmaA, 1, 1, c.matematica, c.joao)
	travar.Travar = boolPtr(true)
	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, travar); err != nil {
		t.Fatalf("seed travado falhou: %v", err)
	}
	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 2, c.portugues, c.maria)); err != nil {
		t.Fatalf("seed solto falhou: %v", err)
	}

	// lote sem a célula travada: ela sobrevive; o resto é trocado
	_, slots, err := c.svc.SubstituirGrade(ctx, c.escolaID, c.ator, gradeDto.SubstituirGradeRequest{
		Turno: constants.TurnoMatutino,
		Slots: []gradeDto.SlotLoteRequest{
			{TurmaID: c.turmaB, DiaSemana: 2, Periodo: 1, DisciplinaID: c.portugues, ProfessorID: c.maria},
		},
	})
	if err != nil {
		t.Fatalf("substituição falhou: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("esperava travada + importada, veio %d aulas", len(slots))
	}
	var sobrouTravada, entrouImportada bool
	for _, s := range slots {
		if s.GradeSlotTravado && s.GradeSlotTurmaID == c.turmaA && s.GradeSlotPeriodo == 1 {
			sobrouTravada = true
		}
		if s.GradeSlotTurmaID == c.turmaB && s.GradeSlotOrigem == constants.SlotOrigemImportacao {
			entrouImportada = true
		}
	}
	if !sobrouTravada || !entrouImportada {
		t.Fatalf("estado inesperado após substituição: %+v", slots)
	}

	// lote divergindo da célula travada derruba a operação inteira
	_, _, err = c.svc.SubstituirGrade(ctx, c.escolaID, c.ator, gradeDto.SubstituirGradeRequest{
		Turno: constants.TurnoMatutino,
		Slots: []gradeDto.SlotLoteRequest{
			{TurmaID: c.turmaA, DiaSemana: 1, Periodo: 1, DisciplinaID: c.portugues, ProfessorID: c.maria},
		},
	})
	exigirConflito(t, err, service.CodigoSlotTravado)

	// e nada pode ter mudado
	if _, depois := c.rascunho(t); len(depois) != 2 {
		t.Fatalf("operação rejeitada tem que reverter inteira, veio %d aulas", len(depois))
	}
}

/* =======================================================
   PUBLICAÇÃO
======================================================= */

func TestPublicar_VersionaECopiaOTrabalho(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()
	ctx := context.Background()

	travar := c.proposta(c.turmaA, 1, 1, c.matematica, c.joao)
	travar.Travar = boolPtr(true)
	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, travar); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}
	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaA, 1, 2, c.portugues, c.maria)); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	pub, copiados, err := c.svc.Publicar(ctx, c.escolaID, c.ator, gradeDto.PublicarRequest{Turno: constants.TurnoMatutino})
	if err != nil {
		t.Fatalf("publicar falhou: %v", err)
	}
	if pub.GradeResultadoVersao != 1 || pub.GradeResultadoPublicadaEm == nil {
		t.Fatalf("primeira publicação deveria ser a versão 1 com data: %+v", pub)
	}
	if len(copiados) != 2 {
		t.Fatalf("esperava 2 aulas copiadas, veio %d", len(copiados))
	}
	for _, s := range copiados {
		if s.GradeSlotOrigem != constants.SlotOrigemPublicacao {
			t.Errorf("cópia deveria marcar origem publicacao, veio %q", s.GradeSlotOrigem)
		}
	}
	resumo := pub.Resumo()
	if resumo.TotalSlots != 2 || resumo.SlotsTravados != 1 || resumo.ProfessoresDist != 2 {
		t.Fatalf("resumo errado: %+v", resumo)
	}

	// o rascunho continua de pé, intocado
	res, slots := c.rascunho(t)
	if res == nil || len(slots) != 2 {
		t.Fatal("publicar não pode mexer no rascunho")
	}

	// segunda publicação: versão 2 e a anterior sai de cena
	if _, err := c.svc.UpsertSlot(ctx, c.escolaID, c.ator, c.proposta(c.turmaB, 3, 1, c.matematica, c.joao)); err != nil {
		t.Fatalf("alterar rascunho falhou: %v", err)
	}
	desc := "fechamento do bimestre"
	pub2, copiados2, err := c.svc.Publicar(ctx, c.escolaID, c.ator, gradeDto.PublicarRequest{Turno: constants.TurnoMatutino, Descricao: &desc})
	if err != nil {
		t.Fatalf("republicar falhou: %v", err)
	}
	if pub2.GradeResultadoVersao != 2 || len(copiados2) != 3 {
		t.Fatalf("esperava versão 2 com 3 aulas, veio v%d com %d", pub2.GradeResultadoVersao, len(copiados2))
	}
	if pub2.GradeResultadoDescricao == nil || *pub2.GradeResultadoDescricao != desc {
		t.Errorf("descrição não gravada")
	}

	var vigentes int64
	testDB.Model(&gradeModel.GradeResultadoModel{}).
		Where("grade_resultado_escola_id = ? AND grade_resultado_turno = ? AND grade_resultado_status = ?",
			c.escolaID, constants.TurnoMatutino, constants.GradeStatusPublished).
		Count(&vigentes)
	if vigentes != 1 {
		t.Fatalf("só pode haver uma publicação vigente, veio %d", vigentes)
	}
}

func TestPublicar_SemRascunho(t *testing.T) {
	c, cleanup := montarCenario(t)
	defer cleanup()

	_, _, err := c.svc.Publicar(context.Background(), c.escolaID, c.ator, gradeDto.PublicarRequest{Turno: constants.TurnoNoturno})
	exigirConflito(t, err, service.CodigoSemRascunho)
}
