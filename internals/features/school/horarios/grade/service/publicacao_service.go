// internals/features/school/horarios/grade/service/publicacao_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/grade/dto"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
)

/* =======================================================
   PUBLICAÇÃO (cópia DRAFT → PUBLISHED)
======================================================= */

// Publicar congela o rascunho do turno numa cópia PUBLISHED: apaga a
// publicação anterior, grava a nova raiz com versão incrementada e resumo, e
// copia os slots. O rascunho segue intacto como mesa de trabalho. Sem
// rascunho, NO_DRAFT. Duas publicações simultâneas: a segunda esbarra no
// índice de vigência e volta como conflito.
func (s *GradeService) Publicar(ctx context.Context, escolaID, ator uuid.UUID, req dto.PublicarRequest) (*gradeModel.GradeResultadoModel, []gradeModel.GradeSlotModel, error) {
	var (
		publicada *gradeModel.GradeResultadoModel
		copiados  []gradeModel.GradeSlotModel
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rascunho, err := obterResultadoTx(tx, escolaID, req.Turno, constants.GradeStatusDraft)
		if err != nil {
			return err
		}
		if rascunho == nil {
			return &ErroConflito{Codigo: CodigoSemRascunho, Mensagem: "não há rascunho para publicar nesse turno"}
		}

		slots, err := carregarSlotsTx(tx, rascunho.GradeResultadoID)
		if err != nil {
			return err
		}

		versao := 1
		anterior, err := obterResultadoTx(tx, escolaID, req.Turno, constants.GradeStatusPublished)
		if err != nil {
			return err
		}
		if anterior != nil {
			versao = anterior.GradeResultadoVersao + 1
			if err := tx.
				Where("grade_slot_grade_resultado_id = ?", anterior.GradeResultadoID).
				Delete(&gradeModel.GradeSlotModel{}).Error; err != nil {
				return err
			}
			if err := tx.
				Where("grade_resultado_id = ?", anterior.GradeResultadoID).
				Delete(&gradeModel.GradeResultadoModel{}).Error; err != nil {
				return err
			}
		}

		agora := time.Now()
		resumo, err := montarResumo(slots)
		if err != nil {
			return err
		}

		nova := gradeModel.GradeResultadoModel{
			GradeResultadoEscolaID:    escolaID,
			GradeResultadoTurno:       req.Turno,
			GradeResultadoStatus:      constants.GradeStatusPublished,
			GradeResultadoVersao:      versao,
			GradeResultadoDescricao:   req.Descricao,
			GradeResultadoPublicadaEm: &agora,
			GradeResultadoResumo:      resumo,
		}
		if err := tx.Create(&nova).Error; err != nil {
			return err
		}

		copiados = make([]gradeModel.GradeSlotModel, 0, len(slots))
		for i := range slots {
			orig := &slots[i]
			copiados = append(copiados, gradeModel.GradeSlotModel{
				GradeSlotEscolaID:         escolaID,
				GradeSlotGradeResultadoID: nova.GradeResultadoID,
				GradeSlotTurmaID:          orig.GradeSlotTurmaID,
				GradeSlotProfessorID:      orig.GradeSlotProfessorID,
				GradeSlotDiaSemana:        orig.GradeSlotDiaSemana,
				GradeSlotPeriodo:          orig.GradeSlotPeriodo,
				GradeSlotDisciplinaID:     orig.GradeSlotDisciplinaID,
				GradeSlotTravado:          orig.GradeSlotTravado,
				GradeSlotTravadoPor:       orig.GradeSlotTravadoPor,
				GradeSlotTravadoEm:        orig.GradeSlotTravadoEm,
				GradeSlotOrigem:           constants.SlotOrigemPublicacao,
			})
		}
		if len(copiados) > 0 {
			if err := tx.CreateInBatches(&copiados, loteInsercao).Error; err != nil {
				return err
			}
		}

		publicada = &nova
		return nil
	})
	if err != nil {
		return nil, nil, mapearErroUnicidade(err)
	}
	return publicada, copiados, nil
}

// montarResumo calcula o snapshot de totais gravado no JSONB da publicação.
func montarResumo(slots []gradeModel.GradeSlotModel) (datatypes.JSON, error) {
	resumo := gradeModel.ResumoPublicacao{
		TotalSlots:    len(slots),
		SlotsPorTurma: map[string]int{},
	}
	professores := map[uuid.UUID]struct{}{}
	for i := range slots {
		s := &slots[i]
		resumo.SlotsPorTurma[s.GradeSlotTurmaID.String()]++
		professores[s.GradeSlotProfessorID] = struct{}{}
		if s.GradeSlotTravado {
			resumo.SlotsTravados++
		}
	}
	resumo.ProfessoresDist = len(professores)

	raw, err := json.Marshal(resumo)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
