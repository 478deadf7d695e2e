// internals/features/school/horarios/grade/service/validador.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minhaescola_backend/internals/constants"
	dispModel "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
)

/* =======================================================
   CÓDIGOS ESTÁVEIS DE REJEIÇÃO
   (contrato com o front — não traduzir)
======================================================= */

const (
	CodigoSlotTravado           = "SLOT_LOCKED"
	CodigoTurmaConflito         = "TURMA_CONFLITO"
	CodigoProfessorConflito     = "PROFESSOR_CONFLITO"
	CodigoIndisponivel          = "INDISPONIVEL"
	CodigoProfessorNaoPermitido = "PROFESSOR_NAO_PERMITIDO"
	CodigoSemRascunho           = "NO_DRAFT"
)

// ErroConflito carrega o código estável de uma rejeição para a camada HTTP.
type ErroConflito struct {
	Codigo   string
	Mensagem string
}

func (e *ErroConflito) Error() string { return e.Mensagem }

/* =======================================================
   FATOS E VEREDITO
======================================================= */

// Celula identifica uma posição (turma, dia, período) dentro de um turno.
type Celula struct {
	TurmaID   uuid.UUID
	DiaSemana int
	Periodo   int
}

// Proposta é a aula candidata a ocupar uma célula do rascunho.
type Proposta struct {
	TurmaID      uuid.UUID
	DiaSemana    int
	Periodo      int
	DisciplinaID uuid.UUID
	ProfessorID  uuid.UUID
}

// SlotExistente é a projeção de uma aula já gravada no rascunho.
type SlotExistente struct {
	SlotID       uuid.UUID
	TurmaID      uuid.UUID
	DiaSemana    int
	Periodo      int
	DisciplinaID uuid.UUID
	ProfessorID  uuid.UUID
	Travado      bool
}

// FatosSlot reúne tudo que as regras precisam enxergar sobre uma proposta.
// O mesmo conjunto de fatos alimenta a simulação (validate-slot) e a gravação,
// então os dois caminhos dão sempre o mesmo veredito.
type FatosSlot struct {
	Proposta Proposta

	// Origem preenchida apenas em arraste (mover aula de uma célula a outra).
	Origem *SlotExistente

	// AulasNoInstante são todas as aulas do rascunho no mesmo (dia, período)
	// do destino, em qualquer turma do turno.
	AulasNoInstante []SlotExistente

	// StatusDisponibilidade já resolvido para o professor no instante proposto.
	StatusDisponibilidade string

	// PossuiVinculo indica modulação do professor na disciplina (para a turma
	// proposta ou vínculo geral da escola).
	PossuiVinculo bool
}

// Veredito é o resultado da avaliação: aceita ou rejeita com código estável.
type Veredito struct {
	OK       bool
	Codigo   string
	Mensagem string
}

func aprovado() Veredito { return Veredito{OK: true} }

func rejeitado(codigo, mensagem string) Veredito {
	return Veredito{OK: false, Codigo: codigo, Mensagem: mensagem}
}

/* =======================================================
   AVALIAÇÃO — ordem fixa, primeira falha encerra
======================================================= */

// ocupanteDoDestino devolve a aula já gravada na célula de destino, se houver.
func (f *FatosSlot) ocupanteDoDestino() *SlotExistente {
	for i := range f.AulasNoInstante {
		s := &f.AulasNoInstante[i]
		if s.TurmaID == f.Proposta.TurmaID {
			return s
		}
	}
	return nil
}

// mesmaCelula diz se a origem do arraste é a própria célula de destino
// (arrastar para o mesmo lugar não conta como ocupação).
func (f *FatosSlot) mesmaCelula(s *SlotExistente) bool {
	return f.Origem != nil &&
		f.Origem.TurmaID == s.TurmaID &&
		f.Origem.DiaSemana == s.DiaSemana &&
		f.Origem.Periodo == s.Periodo
}

// mesmaAtribuicao compara disciplina e professor entre aula existente e proposta.
func (f *FatosSlot) mesmaAtribuicao(s *SlotExistente) bool {
	return s.DisciplinaID == f.Proposta.DisciplinaID &&
		s.ProfessorID == f.Proposta.ProfessorID
}

// AvaliarProposta aplica as regras da grade na ordem fixa. A primeira regra
// violada define o veredito; as demais nem são olhadas.
//
//  1. origem travada            -> SLOT_LOCKED
//  2. destino travado           -> SLOT_LOCKED (exceto mesma atribuição)
//  3. destino ocupado (arraste) -> TURMA_CONFLITO
//  4. professor em outra turma  -> PROFESSOR_CONFLITO
//  5. professor indisponível    -> INDISPONIVEL ("evitar" não bloqueia)
//  6. sem vínculo de modulação  -> PROFESSOR_NAO_PERMITIDO
func AvaliarProposta(f FatosSlot) Veredito {
	// 1) aula de origem travada não sai do lugar
	if f.Origem != nil && f.Origem.Travado {
		return rejeitado(CodigoSlotTravado, "a aula de origem está travada")
	}

	destino := f.ocupanteDoDestino()

	// 2) célula de destino travada só aceita a mesma atribuição
	if destino != nil && destino.Travado && !f.mesmaAtribuicao(destino) {
		return rejeitado(CodigoSlotTravado, "a célula de destino está travada")
	}

	// 3) em arraste, destino ocupado por outra atribuição é conflito de turma;
	//    edição direta da célula substitui o ocupante e não passa por aqui
	if f.Origem != nil && destino != nil && !f.mesmaCelula(destino) && !f.mesmaAtribuicao(destino) {
		return rejeitado(CodigoTurmaConflito,
			fmt.Sprintf("a turma já tem aula no dia %d, período %d", f.Proposta.DiaSemana, f.Proposta.Periodo))
	}

	// 4) o professor não pode estar em duas turmas no mesmo instante
	for i := range f.AulasNoInstante {
		s := &f.AulasNoInstante[i]
		if s.TurmaID == f.Proposta.TurmaID {
			continue // ocupante do destino: será substituído ou já é a mesma aula
		}
		if f.Origem != nil && s.SlotID == f.Origem.SlotID {
			continue // a própria aula sendo movida
		}
		if s.ProfessorID == f.Proposta.ProfessorID {
			return rejeitado(CodigoProfessorConflito,
				fmt.Sprintf("o professor já dá aula em outra turma no dia %d, período %d", f.Proposta.DiaSemana, f.Proposta.Periodo))
		}
	}

	// 5) indisponibilidade bloqueia; "evitar" é só um aviso do editor
	if f.StatusDisponibilidade == constants.DisponibilidadeIndisponivel {
		return rejeitado(CodigoIndisponivel, "o professor está indisponível nesse horário")
	}

	// 6) sem modulação na disciplina o professor não entra na grade
	if !f.PossuiVinculo {
		return rejeitado(CodigoProfessorNaoPermitido, "o professor não tem vínculo de modulação com a disciplina")
	}

	return aprovado()
}

/* =======================================================
   CARGA DOS FATOS
   (mesmo carregador na simulação e na gravação)
======================================================= */

func slotParaExistente(s *gradeModel.GradeSlotModel) SlotExistente {
	return SlotExistente{
		SlotID:       s.GradeSlotID,
		TurmaID:      s.GradeSlotTurmaID,
		DiaSemana:    s.GradeSlotDiaSemana,
		Periodo:      s.GradeSlotPeriodo,
		DisciplinaID: s.GradeSlotDisciplinaID,
		ProfessorID:  s.GradeSlotProfessorID,
		Travado:      s.GradeSlotTravado,
	}
}

// CarregarFatos monta o FatosSlot consultando o rascunho indicado. Recebe o
// *gorm.DB da transação em curso para que a gravação enxergue o mesmo estado
// que vai alterar.
func CarregarFatos(tx *gorm.DB, escolaID, resultadoID uuid.UUID, turno string, proposta Proposta, origem *Celula) (FatosSlot, error) {
	fatos := FatosSlot{Proposta: proposta}

	// aulas do rascunho no instante proposto (todas as turmas)
	var noInstante []gradeModel.GradeSlotModel
	if err := tx.
		Where("grade_slot_grade_resultado_id = ? AND grade_slot_dia_semana = ? AND grade_slot_periodo = ?",
			resultadoID, proposta.DiaSemana, proposta.Periodo).
		Find(&noInstante).Error; err != nil {
		return fatos, err
	}
	fatos.AulasNoInstante = make([]SlotExistente, 0, len(noInstante))
	for i := range noInstante {
		fatos.AulasNoInstante = append(fatos.AulasNoInstante, slotParaExistente(&noInstante[i]))
	}

	// aula de origem, quando a proposta é um arraste
	if origem != nil {
		var linhaOrigem gradeModel.GradeSlotModel
		err := tx.
			Where("grade_slot_grade_resultado_id = ? AND grade_slot_turma_id = ? AND grade_slot_dia_semana = ? AND grade_slot_periodo = ?",
				resultadoID, origem.TurmaID, origem.DiaSemana, origem.Periodo).
			First(&linhaOrigem).Error
		switch {
		case err == nil:
			se := slotParaExistente(&linhaOrigem)
			fatos.Origem = &se
		case errors.Is(err, gorm.ErrRecordNotFound):
			// origem já sumiu (outro usuário mexeu); segue como edição direta
		default:
			return fatos, err
		}
	}

	// disponibilidade do professor no dia, resolvida para o período
	var disp dispModel.DisponibilidadeModel
	err := tx.
		Where("disponibilidade_escola_id = ? AND disponibilidade_professor_id = ? AND disponibilidade_turno = ? AND disponibilidade_dia_semana = ?",
			escolaID, proposta.ProfessorID, turno, proposta.DiaSemana).
		First(&disp).Error
	switch {
	case err == nil:
		fatos.StatusDisponibilidade = dispModel.ResolverStatus(&disp, proposta.Periodo)
	case errors.Is(err, gorm.ErrRecordNotFound):
		fatos.StatusDisponibilidade = dispModel.ResolverStatus(nil, proposta.Periodo)
	default:
		return fatos, err
	}

	// vínculo de modulação: da turma proposta ou geral da escola
	var possui bool
	if err := tx.Raw(`
		SELECT EXISTS (
			SELECT 1 FROM modulacoes
			WHERE modulacao_escola_id = ?
			  AND modulacao_professor_id = ?
			  AND modulacao_disciplina_id = ?
			  AND modulacao_turma_id IN (?, ?)
		)`,
		escolaID, proposta.ProfessorID, proposta.DisciplinaID,
		proposta.TurmaID, uuid.Nil,
	).Scan(&possui).Error; err != nil {
		return fatos, err
	}
	fatos.PossuiVinculo = possui

	return fatos, nil
}
