// internals/features/school/horarios/modulacao/controller/modulacao_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/modulacao/dto"
	m "minhaescola_backend/internals/features/school/horarios/modulacao/model"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// tamanho dos lotes de INSERT do upsert em massa
const loteUpsert = 500

// ModulacaoController mantém os vínculos professor × disciplina (× turma):
// quem pode dar o quê, e quantas aulas semanais o vínculo cobre.
type ModulacaoController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewModulacaoController(db *gorm.DB, v *validator.Validate) *ModulacaoController {
	return &ModulacaoController{DB: db, Validate: v}
}

/* =======================================================
   POST /modulacao/upsert  (lote, tudo-ou-nada)
======================================================= */

// BulkUpsert grava o lote inteiro numa transação: linhas sanitizadas e
// deduplicadas (a última ocorrência da mesma chave vence), gravadas em blocos
// com upsert na chave única. Qualquer falha desfaz tudo; o relatório devolve
// linha a linha o que entrou e o que foi rejeitado.
func (ctl *ModulacaoController) BulkUpsert(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkUpsertModulacaoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ref, err := ctl.carregarReferencias(c, escolaID)
	if err != nil {
		log.Printf("[Modulacao.BulkUpsert] referências: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar cadastros da escola")
	}

	aceitos, relatorio := req.SanitizarEDeduplicar(escolaID, ref)

	if len(aceitos) > 0 {
		err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
			return tx.
				Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "modulacao_escola_id"},
						{Name: "modulacao_professor_id"},
						{Name: "modulacao_disciplina_id"},
						{Name: "modulacao_turma_id"},
					},
					DoUpdates: clause.AssignmentColumns([]string{"modulacao_aulas"}),
				}).
				CreateInBatches(&aceitos, loteUpsert).Error
		})
		if err != nil {
			log.Printf("[Modulacao.BulkUpsert] %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gravar a modulação; nada foi alterado")
		}
	}

	return helper.JsonOK(c, "Modulação processada", relatorio)
}

// carregarReferencias monta os conjuntos de ids cadastrados da escola para a
// sanitização rejeitar linha apontando para registro alheio.
func (ctl *ModulacaoController) carregarReferencias(c *fiber.Ctx, escolaID uuid.UUID) (*dto.ReferenciasValidas, error) {
	db := ctl.DB.WithContext(c.Context())

	var profIDs, discIDs, turmaIDs []uuid.UUID
	if err := db.Table("professores").
		Where("professor_escola_id = ? AND professor_deleted_at IS NULL", escolaID).
		Pluck("professor_id", &profIDs).Error; err != nil {
		return nil, err
	}
	if err := db.Table("disciplinas").
		Where("disciplina_escola_id = ? AND disciplina_deleted_at IS NULL", escolaID).
		Pluck("disciplina_id", &discIDs).Error; err != nil {
		return nil, err
	}
	if err := db.Table("turmas").
		Where("turma_escola_id = ? AND turma_deleted_at IS NULL", escolaID).
		Pluck("turma_id", &turmaIDs).Error; err != nil {
		return nil, err
	}

	ref := &dto.ReferenciasValidas{
		Professores: make(map[uuid.UUID]struct{}, len(profIDs)),
		Disciplinas: make(map[uuid.UUID]struct{}, len(discIDs)),
		Turmas:      make(map[uuid.UUID]struct{}, len(turmaIDs)),
	}
	for _, id := range profIDs {
		ref.Professores[id] = struct{}{}
	}
	for _, id := range discIDs {
		ref.Disciplinas[id] = struct{}{}
	}
	for _, id := range turmaIDs {
		ref.Turmas[id] = struct{}{}
	}
	return ref, nil
}

/* =======================================================
   GET /modulacao?turno=
======================================================= */

// linha de leitura com nomes juntados
type modulacaoRow struct {
	ModulacaoID    uuid.UUID `gorm:"column:modulacao_id"`
	ProfessorID    uuid.UUID `gorm:"column:professor_id"`
	ProfessorNome  string    `gorm:"column:professor_nome"`
	DisciplinaID   uuid.UUID `gorm:"column:disciplina_id"`
	DisciplinaNome string    `gorm:"column:disciplina_nome"`
	TurmaID        uuid.UUID `gorm:"column:turma_id"`
	Aulas          int       `gorm:"column:aulas"`
}

// Listar devolve as turmas do turno e os vínculos que valem para ele: os
// específicos dessas turmas e os gerais da escola (turma nula na resposta).
func (ctl *ModulacaoController) Listar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}

	db := ctl.DB.WithContext(c.Context())

	var turmas []dto.TurmaResumo
	if err := db.Raw(`
		SELECT turma_id, turma_nome AS nome, turma_serie AS serie, turma_turno AS turno
		FROM turmas
		WHERE turma_escola_id = ? AND turma_turno = ? AND turma_deleted_at IS NULL AND turma_ativa = TRUE
		ORDER BY turma_nome, turma_id`,
		escolaID, turno,
	).Scan(&turmas).Error; err != nil {
		log.Printf("[Modulacao.Listar] turmas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar turmas")
	}

	var rows []modulacaoRow
	if err := db.Raw(`
		SELECT mo.modulacao_id            AS modulacao_id,
		       mo.modulacao_professor_id  AS professor_id,
		       p.professor_nome           AS professor_nome,
		       mo.modulacao_disciplina_id AS disciplina_id,
		       d.disciplina_nome          AS disciplina_nome,
		       mo.modulacao_turma_id      AS turma_id,
		       mo.modulacao_aulas         AS aulas
		FROM modulacoes mo
		JOIN professores p
		  ON p.professor_id = mo.modulacao_professor_id AND p.professor_deleted_at IS NULL
		JOIN disciplinas d
		  ON d.disciplina_id = mo.modulacao_disciplina_id AND d.disciplina_deleted_at IS NULL
		LEFT JOIN turmas t
		  ON t.turma_id = mo.modulacao_turma_id AND t.turma_deleted_at IS NULL
		WHERE mo.modulacao_escola_id = ?
		  AND (mo.modulacao_turma_id = ? OR t.turma_turno = ?)
		ORDER BY p.professor_nome, d.disciplina_nome, mo.modulacao_id`,
		escolaID, uuid.Nil, turno,
	).Scan(&rows).Error; err != nil {
		log.Printf("[Modulacao.Listar] vínculos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar a modulação")
	}

	modulacoes := make([]dto.ModulacaoResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		resp := dto.ModulacaoResponse{
			ModulacaoID:    r.ModulacaoID,
			ProfessorID:    r.ProfessorID,
			ProfessorNome:  r.ProfessorNome,
			DisciplinaID:   r.DisciplinaID,
			DisciplinaNome: r.DisciplinaNome,
			Aulas:          r.Aulas,
		}
		if r.TurmaID != uuid.Nil {
			tid := r.TurmaID
			resp.TurmaID = &tid
		}
		modulacoes = append(modulacoes, resp)
	}

	return helper.JsonOK(c, "Modulação carregada", dto.ListModulacaoResponse{
		Turmas:     turmas,
		Modulacoes: modulacoes,
	})
}

/* =======================================================
   POST /modulacao/remover  (lote)
======================================================= */

// RemoverLote apaga vínculos pelas triplas (professor, disciplina, turma|geral).
// Com turno no corpo, a remoção de vínculo de turma só alcança turmas daquele
// turno; vínculo geral é apagado direto pela sentinela.
func (ctl *ModulacaoController) RemoverLote(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RemoverModulacaoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if req.Turno != nil {
		t := strings.ToLower(strings.TrimSpace(*req.Turno))
		req.Turno = &t
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var removidos int64
	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Itens {
			q := tx.Where(
				"modulacao_escola_id = ? AND modulacao_professor_id = ? AND modulacao_disciplina_id = ?",
				escolaID, item.ProfessorID, item.DisciplinaID,
			)
			if item.TurmaID == nil || *item.TurmaID == uuid.Nil {
				q = q.Where("modulacao_turma_id = ?", uuid.Nil)
			} else {
				q = q.Where("modulacao_turma_id = ?", *item.TurmaID)
				if req.Turno != nil {
					q = q.Where("modulacao_turma_id IN (SELECT turma_id FROM turmas WHERE turma_escola_id = ? AND turma_turno = ? AND turma_deleted_at IS NULL)",
						escolaID, *req.Turno)
				}
			}
			res := q.Delete(&m.ModulacaoModel{})
			if res.Error != nil {
				return res.Error
			}
			removidos += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		log.Printf("[Modulacao.RemoverLote] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao remover vínculos; nada foi alterado")
	}

	return helper.JsonOK(c, "Vínculos removidos", fiber.Map{"removidos": removidos})
}
