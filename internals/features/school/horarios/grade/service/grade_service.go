// internals/features/school/horarios/grade/service/grade_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/grade/dto"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
)

// tamanho dos lotes de INSERT na substituição integral e na publicação
const loteInsercao = 500

// ErrAulaNaoEncontrada: a célula indicada não tem aula no rascunho.
var ErrAulaNaoEncontrada = errors.New("não há aula na célula indicada")

// GradeService concentra as operações de escrita e leitura da grade horária.
// Toda escrita roda numa transação; os vereditos vêm de AvaliarProposta e os
// índices únicos do banco fazem o papel de última linha de defesa em corrida.
type GradeService struct {
	DB *gorm.DB
}

func NewGradeService(db *gorm.DB) *GradeService {
	return &GradeService{DB: db}
}

/* =======================================================
   MAPEAMENTO DE ERROS DO POSTGRES
======================================================= */

// mapearErroUnicidade converte violação de índice único (23505) no mesmo
// código estável que a validação teria devolvido — quem perde a corrida
// recebe a mesma resposta de quem é barrado pela regra.
func mapearErroUnicidade(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_grade_slots_turma":
			return &ErroConflito{Codigo: CodigoTurmaConflito, Mensagem: "a turma já tem aula nesse instante"}
		case "uq_grade_slots_professor":
			return &ErroConflito{Codigo: CodigoProfessorConflito, Mensagem: "o professor já dá aula nesse instante"}
		case "uq_grade_resultados_vigente":
			return &ErroConflito{Codigo: "CONFLICT", Mensagem: "outra publicação em andamento; tente novamente"}
		}
	}
	// fallback quando o driver não expõe o PgError
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "23505") || strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") {
		switch {
		case strings.Contains(s, "uq_grade_slots_turma"):
			return &ErroConflito{Codigo: CodigoTurmaConflito, Mensagem: "a turma já tem aula nesse instante"}
		case strings.Contains(s, "uq_grade_slots_professor"):
			return &ErroConflito{Codigo: CodigoProfessorConflito, Mensagem: "o professor já dá aula nesse instante"}
		case strings.Contains(s, "uq_grade_resultados_vigente"):
			return &ErroConflito{Codigo: "CONFLICT", Mensagem: "outra publicação em andamento; tente novamente"}
		}
	}
	return err
}

/* =======================================================
   RASCUNHO (raiz DRAFT)
======================================================= */

// garantirRascunhoTx devolve a raiz DRAFT do (escola, turno), criando na
// primeira escrita. O DoNothing + refetch cobre a corrida de dois editores
// abrindo a mesma grade ao mesmo tempo.
func garantirRascunhoTx(tx *gorm.DB, escolaID uuid.UUID, turno string) (*gradeModel.GradeResultadoModel, error) {
	novo := gradeModel.GradeResultadoModel{
		GradeResultadoEscolaID: escolaID,
		GradeResultadoTurno:    turno,
		GradeResultadoStatus:   constants.GradeStatusDraft,
	}
	if err := tx.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&novo).Error; err != nil {
		return nil, err
	}

	var res gradeModel.GradeResultadoModel
	if err := tx.
		Where("grade_resultado_escola_id = ? AND grade_resultado_turno = ? AND grade_resultado_status = ?",
			escolaID, turno, constants.GradeStatusDraft).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// obterResultadoTx busca a raiz (DRAFT ou PUBLISHED); ausência devolve nil sem erro.
func obterResultadoTx(tx *gorm.DB, escolaID uuid.UUID, turno, status string) (*gradeModel.GradeResultadoModel, error) {
	var res gradeModel.GradeResultadoModel
	err := tx.
		Where("grade_resultado_escola_id = ? AND grade_resultado_turno = ? AND grade_resultado_status = ?",
			escolaID, turno, status).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func carregarSlotsTx(tx *gorm.DB, resultadoID uuid.UUID) ([]gradeModel.GradeSlotModel, error) {
	var slots []gradeModel.GradeSlotModel
	err := tx.
		Where("grade_slot_grade_resultado_id = ?", resultadoID).
		Order("grade_slot_turma_id, grade_slot_dia_semana, grade_slot_periodo").
		Find(&slots).Error
	return slots, err
}

func buscarSlotTx(tx *gorm.DB, resultadoID uuid.UUID, cel Celula) (*gradeModel.GradeSlotModel, error) {
	var slot gradeModel.GradeSlotModel
	err := tx.
		Where("grade_slot_grade_resultado_id = ? AND grade_slot_turma_id = ? AND grade_slot_dia_semana = ? AND grade_slot_periodo = ?",
			resultadoID, cel.TurmaID, cel.DiaSemana, cel.Periodo).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

/* =======================================================
   SIMULAÇÃO (dry-run)
======================================================= */

// SimularProposta responde o que aconteceria se o slot fosse gravado agora.
// Não cria rascunho nem escreve nada; sem rascunho, as checagens de colisão
// são vazias mas disponibilidade e modulação continuam valendo.
func (s *GradeService) SimularProposta(ctx context.Context, escolaID uuid.UUID, req dto.PropostaSlotRequest) (Veredito, error) {
	db := s.DB.WithContext(ctx)

	resultadoID := uuid.Nil
	rascunho, err := obterResultadoTx(db, escolaID, req.Turno, constants.GradeStatusDraft)
	if err != nil {
		return Veredito{}, err
	}
	if rascunho != nil {
		resultadoID = rascunho.GradeResultadoID
	}

	proposta, origem := propostaDoRequest(req)
	fatos, err := CarregarFatos(db, escolaID, resultadoID, req.Turno, proposta, origem)
	if err != nil {
		return Veredito{}, err
	}
	return AvaliarProposta(fatos), nil
}

func propostaDoRequest(req dto.PropostaSlotRequest) (Proposta, *Celula) {
	proposta := Proposta{
		TurmaID:      req.TurmaID,
		DiaSemana:    req.DiaSemana,
		Periodo:      req.Periodo,
		DisciplinaID: req.DisciplinaID,
		ProfessorID:  req.ProfessorID,
	}
	var origem *Celula
	if req.Origem != nil {
		origem = &Celula{
			TurmaID:   req.Origem.TurmaID,
			DiaSemana: req.Origem.DiaSemana,
			Periodo:   req.Origem.Periodo,
		}
	}
	return proposta, origem
}

/* =======================================================
   GRAVAÇÃO DE SLOT (upsert / remover / mover)
======================================================= */

// UpsertSlot grava a aula na célula de destino. Mesma validação do dry-run;
// em edição direta a célula é substituída, em arraste a origem é liberada na
// mesma transação.
func (s *GradeService) UpsertSlot(ctx context.Context, escolaID, ator uuid.UUID, req dto.PropostaSlotRequest) (*gradeModel.GradeSlotModel, error) {
	var gravado *gradeModel.GradeSlotModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rascunho, err := garantirRascunhoTx(tx, escolaID, req.Turno)
		if err != nil {
			return err
		}

		proposta, origem := propostaDoRequest(req)
		fatos, err := CarregarFatos(tx, escolaID, rascunho.GradeResultadoID, req.Turno, proposta, origem)
		if err != nil {
			return err
		}
		if v := AvaliarProposta(fatos); !v.OK {
			return &ErroConflito{Codigo: v.Codigo, Mensagem: v.Mensagem}
		}

		// arraste: libera a célula de origem antes de gravar o destino, senão
		// o índice de professor colide com a própria aula sendo movida
		destinoEhOrigem := fatos.Origem != nil &&
			fatos.Origem.TurmaID == proposta.TurmaID &&
			fatos.Origem.DiaSemana == proposta.DiaSemana &&
			fatos.Origem.Periodo == proposta.Periodo
		if fatos.Origem != nil && !destinoEhOrigem {
			if err := tx.
				Where("grade_slot_id = ?", fatos.Origem.SlotID).
				Delete(&gradeModel.GradeSlotModel{}).Error; err != nil {
				return err
			}
		}

		gravado, err = gravarDestinoTx(tx, rascunho, escolaID, ator, proposta, req.Travar, fatos.ocupanteDoDestino())
		return err
	})
	if err != nil {
		return nil, mapearErroUnicidade(err)
	}
	return gravado, nil
}

// gravarDestinoTx substitui ou cria a linha da célula de destino.
// Travar nil preserva o estado de trava; true/false grava com auditoria.
func gravarDestinoTx(tx *gorm.DB, rascunho *gradeModel.GradeResultadoModel, escolaID, ator uuid.UUID, p Proposta, travar *bool, ocupante *SlotExistente) (*gradeModel.GradeSlotModel, error) {
	agora := time.Now()

	if ocupante != nil {
		campos := map[string]interface{}{
			"grade_slot_disciplina_id": p.DisciplinaID,
			"grade_slot_professor_id":  p.ProfessorID,
			"grade_slot_origem":        constants.SlotOrigemManual,
		}
		if travar != nil {
			if *travar {
				campos["grade_slot_travado"] = true
				campos["grade_slot_travado_por"] = ator
				campos["grade_slot_travado_em"] = agora
			} else {
				campos["grade_slot_travado"] = false
				campos["grade_slot_travado_por"] = nil
				campos["grade_slot_travado_em"] = nil
			}
		}
		if err := tx.Model(&gradeModel.GradeSlotModel{}).
			Where("grade_slot_id = ?", ocupante.SlotID).
			Updates(campos).Error; err != nil {
			return nil, err
		}
		var atual gradeModel.GradeSlotModel
		if err := tx.Where("grade_slot_id = ?", ocupante.SlotID).First(&atual).Error; err != nil {
			return nil, err
		}
		return &atual, nil
	}

	novo := gradeModel.GradeSlotModel{
		GradeSlotEscolaID:         escolaID,
		GradeSlotGradeResultadoID: rascunho.GradeResultadoID,
		GradeSlotTurmaID:          p.TurmaID,
		GradeSlotProfessorID:      p.ProfessorID,
		GradeSlotDiaSemana:        p.DiaSemana,
		GradeSlotPeriodo:          p.Periodo,
		GradeSlotDisciplinaID:     p.DisciplinaID,
		GradeSlotOrigem:           constants.SlotOrigemManual,
	}
	if travar != nil && *travar {
		novo.GradeSlotTravado = true
		novo.GradeSlotTravadoPor = &ator
		novo.GradeSlotTravadoEm = &agora
	}
	if err := tx.Create(&novo).Error; err != nil {
		return nil, err
	}
	return &novo, nil
}

// RemoverSlot apaga a aula da célula. Sem rascunho ou sem aula é no-op;
// aula travada não sai sem destravar antes.
func (s *GradeService) RemoverSlot(ctx context.Context, escolaID uuid.UUID, req dto.RemoverSlotRequest) (bool, error) {
	removido := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rascunho, err := obterResultadoTx(tx, escolaID, req.Turno, constants.GradeStatusDraft)
		if err != nil || rascunho == nil {
			return err
		}

		cel := Celula{TurmaID: req.TurmaID, DiaSemana: req.DiaSemana, Periodo: req.Periodo}
		slot, err := buscarSlotTx(tx, rascunho.GradeResultadoID, cel)
		if err != nil || slot == nil {
			return err
		}
		if slot.GradeSlotTravado {
			return &ErroConflito{Codigo: CodigoSlotTravado, Mensagem: "a aula está travada; destrave antes de remover"}
		}

		if err := tx.
			Where("grade_slot_id = ?", slot.GradeSlotID).
			Delete(&gradeModel.GradeSlotModel{}).Error; err != nil {
			return err
		}
		removido = true
		return nil
	})
	return removido, err
}

// MoverSlot move a aula da origem para o destino numa única transação: valida
// com semântica de arraste, apaga a origem e grava o destino. Ou tudo, ou nada.
func (s *GradeService) MoverSlot(ctx context.Context, escolaID, ator uuid.UUID, req dto.MoverSlotRequest) (*gradeModel.GradeSlotModel, error) {
	var gravado *gradeModel.GradeSlotModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rascunho, err := obterResultadoTx(tx, escolaID, req.Turno, constants.GradeStatusDraft)
		if err != nil {
			return err
		}
		if rascunho == nil {
			return &ErroConflito{Codigo: CodigoSemRascunho, Mensagem: "não há rascunho para esse turno"}
		}

		origemCel := Celula{TurmaID: req.Origem.TurmaID, DiaSemana: req.Origem.DiaSemana, Periodo: req.Origem.Periodo}
		origem, err := buscarSlotTx(tx, rascunho.GradeResultadoID, origemCel)
		if err != nil {
			return err
		}
		if origem == nil {
			return ErrAulaNaoEncontrada
		}

		// a atribuição viaja com a origem
		proposta := Proposta{
			TurmaID:      req.Destino.TurmaID,
			DiaSemana:    req.Destino.DiaSemana,
			Periodo:      req.Destino.Periodo,
			DisciplinaID: origem.GradeSlotDisciplinaID,
			ProfessorID:  origem.GradeSlotProfessorID,
		}
		fatos, err := CarregarFatos(tx, escolaID, rascunho.GradeResultadoID, req.Turno, proposta, &origemCel)
		if err != nil {
			return err
		}
		if v := AvaliarProposta(fatos); !v.OK {
			return &ErroConflito{Codigo: v.Codigo, Mensagem: v.Mensagem}
		}

		// mover para a própria célula é no-op
		if origemCel.TurmaID == proposta.TurmaID &&
			origemCel.DiaSemana == proposta.DiaSemana &&
			origemCel.Periodo == proposta.Periodo {
			gravado = origem
			return nil
		}

		if err := tx.
			Where("grade_slot_id = ?", origem.GradeSlotID).
			Delete(&gradeModel.GradeSlotModel{}).Error; err != nil {
			return err
		}

		// destino ocupado pela mesma atribuição: a aula de lá já é o resultado
		if destino := fatos.ocupanteDoDestino(); destino != nil && destino.SlotID != origem.GradeSlotID {
			var atual gradeModel.GradeSlotModel
			if err := tx.Where("grade_slot_id = ?", destino.SlotID).First(&atual).Error; err != nil {
				return err
			}
			gravado = &atual
			return nil
		}

		novo := gradeModel.GradeSlotModel{
			GradeSlotEscolaID:         escolaID,
			GradeSlotGradeResultadoID: rascunho.GradeResultadoID,
			GradeSlotTurmaID:          proposta.TurmaID,
			GradeSlotProfessorID:      proposta.ProfessorID,
			GradeSlotDiaSemana:        proposta.DiaSemana,
			GradeSlotPeriodo:          proposta.Periodo,
			GradeSlotDisciplinaID:     proposta.DisciplinaID,
			GradeSlotOrigem:           origem.GradeSlotOrigem,
		}
		if err := tx.Create(&novo).Error; err != nil {
			return err
		}
		gravado = &novo
		return nil
	})
	if err != nil {
		return nil, mapearErroUnicidade(err)
	}
	return gravado, nil
}

/* =======================================================
   TRAVA COM AUDITORIA
======================================================= */

// TravarSlot marca a aula como travada registrando quem e quando. Travar o
// que já está travado mantém a auditoria original.
func (s *GradeService) TravarSlot(ctx context.Context, escolaID, ator uuid.UUID, req dto.TravaSlotRequest) (*gradeModel.GradeSlotModel, error) {
	return s.mudarTrava(ctx, escolaID, ator, req, true)
}

// DestravarSlot limpa a trava e a auditoria. Destravar o destravado é no-op.
func (s *GradeService) DestravarSlot(ctx context.Context, escolaID, ator uuid.UUID, req dto.TravaSlotRequest) (*gradeModel.GradeSlotModel, error) {
	return s.mudarTrava(ctx, escolaID, ator, req, false)
}

func (s *GradeService) mudarTrava(ctx context.Context, escolaID, ator uuid.UUID, req dto.TravaSlotRequest, travar bool) (*gradeModel.GradeSlotModel, error) {
	var atual *gradeModel.GradeSlotModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rascunho, err := obterResultadoTx(tx, escolaID, req.Turno, constants.GradeStatusDraft)
		if err != nil {
			return err
		}
		if rascunho == nil {
			return &ErroConflito{Codigo: CodigoSemRascunho, Mensagem: "não há rascunho para esse turno"}
		}

		cel := Celula{TurmaID: req.TurmaID, DiaSemana: req.DiaSemana, Periodo: req.Periodo}
		slot, err := buscarSlotTx(tx, rascunho.GradeResultadoID, cel)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrAulaNaoEncontrada
		}

		if slot.GradeSlotTravado == travar {
			atual = slot
			return nil
		}

		campos := map[string]interface{}{"grade_slot_travado": travar}
		if travar {
			campos["grade_slot_travado_por"] = ator
			campos["grade_slot_travado_em"] = time.Now()
		} else {
			campos["grade_slot_travado_por"] = nil
			campos["grade_slot_travado_em"] = nil
		}
		if err := tx.Model(&gradeModel.GradeSlotModel{}).
			Where("grade_slot_id = ?", slot.GradeSlotID).
			Updates(campos).Error; err != nil {
			return err
		}

		var depois gradeModel.GradeSlotModel
		if err := tx.Where("grade_slot_id = ?", slot.GradeSlotID).First(&depois).Error; err != nil {
			return err
		}
		atual = &depois
		return nil
	})
	if err != nil {
		return nil, err
	}
	return atual, nil
}

/* =======================================================
   SUBSTITUIÇÃO INTEGRAL DO RASCUNHO
======================================================= */

// SubstituirGrade troca o conteúdo do rascunho pelo lote enviado, numa única
// transação. Aulas travadas não saem: célula travada sem correspondente igual
// no lote permanece; lote divergindo de uma célula travada derruba a operação
// inteira com SLOT_LOCKED. Colisões de turma/professor ficam por conta dos
// índices únicos, mapeados nos mesmos códigos da validação.
func (s *GradeService) SubstituirGrade(ctx context.Context, escolaID, ator uuid.UUID, req dto.SubstituirGradeRequest) (*gradeModel.GradeResultadoModel, []gradeModel.GradeSlotModel, error) {
	var (
		rascunho *gradeModel.GradeResultadoModel
		slots    []gradeModel.GradeSlotModel
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rascunho, err = garantirRascunhoTx(tx, escolaID, req.Turno)
		if err != nil {
			return err
		}

		existentes, err := carregarSlotsTx(tx, rascunho.GradeResultadoID)
		if err != nil {
			return err
		}

		// dedupe do lote por célula, última ocorrência vence
		type chaveCelula struct {
			Turma uuid.UUID
			Dia   int
			Per   int
		}
		porCelula := make(map[chaveCelula]dto.SlotLoteRequest, len(req.Slots))
		ordem := make([]chaveCelula, 0, len(req.Slots))
		for _, item := range req.Slots {
			k := chaveCelula{Turma: item.TurmaID, Dia: item.DiaSemana, Per: item.Periodo}
			if _, visto := porCelula[k]; !visto {
				ordem = append(ordem, k)
			}
			porCelula[k] = item
		}

		// aulas travadas ficam; lote divergente em célula travada é rejeitado
		for i := range existentes {
			e := &existentes[i]
			if !e.GradeSlotTravado {
				continue
			}
			k := chaveCelula{Turma: e.GradeSlotTurmaID, Dia: e.GradeSlotDiaSemana, Per: e.GradeSlotPeriodo}
			item, presente := porCelula[k]
			if presente {
				if item.DisciplinaID != e.GradeSlotDisciplinaID || item.ProfessorID != e.GradeSlotProfessorID {
					return &ErroConflito{Codigo: CodigoSlotTravado, Mensagem: "o lote altera uma aula travada"}
				}
				delete(porCelula, k) // a travada permanece como está
			}
		}

		if err := tx.
			Where("grade_slot_grade_resultado_id = ? AND grade_slot_travado = FALSE", rascunho.GradeResultadoID).
			Delete(&gradeModel.GradeSlotModel{}).Error; err != nil {
			return err
		}

		agora := time.Now()
		novos := make([]gradeModel.GradeSlotModel, 0, len(porCelula))
		for _, k := range ordem {
			item, presente := porCelula[k]
			if !presente {
				continue // absorvido por uma aula travada
			}
			novo := gradeModel.GradeSlotModel{
				GradeSlotEscolaID:         escolaID,
				GradeSlotGradeResultadoID: rascunho.GradeResultadoID,
				GradeSlotTurmaID:          item.TurmaID,
				GradeSlotProfessorID:      item.ProfessorID,
				GradeSlotDiaSemana:        item.DiaSemana,
				GradeSlotPeriodo:          item.Periodo,
				GradeSlotDisciplinaID:     item.DisciplinaID,
				GradeSlotOrigem:           constants.SlotOrigemImportacao,
			}
			if item.Travado {
				novo.GradeSlotTravado = true
				novo.GradeSlotTravadoPor = &ator
				novo.GradeSlotTravadoEm = &agora
			}
			novos = append(novos, novo)
		}
		if len(novos) > 0 {
			if err := tx.CreateInBatches(&novos, loteInsercao).Error; err != nil {
				return err
			}
		}

		slots, err = carregarSlotsTx(tx, rascunho.GradeResultadoID)
		return err
	})
	if err != nil {
		return nil, nil, mapearErroUnicidade(err)
	}
	return rascunho, slots, nil
}

/* =======================================================
   LEITURA
======================================================= */

// ObterGrade devolve a raiz e os slots do (escola, turno, status).
// Ausência devolve raiz nil sem erro.
func (s *GradeService) ObterGrade(ctx context.Context, escolaID uuid.UUID, turno, status string) (*gradeModel.GradeResultadoModel, []gradeModel.GradeSlotModel, error) {
	db := s.DB.WithContext(ctx)

	res, err := obterResultadoTx(db, escolaID, turno, status)
	if err != nil || res == nil {
		return nil, nil, err
	}
	slots, err := carregarSlotsTx(db, res.GradeResultadoID)
	if err != nil {
		return nil, nil, err
	}
	return res, slots, nil
}
