// internals/features/school/horarios/cargas_horarias/controller/carga_horaria_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "minhaescola_backend/internals/features/school/horarios/cargas_horarias/dto"
	m "minhaescola_backend/internals/features/school/horarios/cargas_horarias/model"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// CargaHorariaController define quantas aulas semanais de cada disciplina a
// turma precisa receber — a demanda que a grade tem de satisfazer.
type CargaHorariaController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCargaHorariaController(db *gorm.DB, v *validator.Validate) *CargaHorariaController {
	return &CargaHorariaController{DB: db, Validate: v}
}

type cargaRow struct {
	TurmaID        uuid.UUID `gorm:"column:turma_id"`
	DisciplinaID   uuid.UUID `gorm:"column:disciplina_id"`
	DisciplinaNome string    `gorm:"column:disciplina_nome"`
	Aulas          int       `gorm:"column:aulas"`
}

/* =======================================================
   GET /cargas-horarias?turma_id=
======================================================= */

// Listar devolve as cargas da turma indicada; sem turma_id, lista a escola
// inteira paginada.
func (ctl *CargaHorariaController) Listar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.Context())

	turmaStr := strings.TrimSpace(c.Query("turma_id"))
	if turmaStr != "" {
		turmaID, err := uuid.Parse(turmaStr)
		if err != nil || turmaID == uuid.Nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "turma_id inválido")
		}

		var rows []cargaRow
		if err := db.Raw(`
			SELECT ch.carga_horaria_turma_id      AS turma_id,
			       ch.carga_horaria_disciplina_id AS disciplina_id,
			       d.disciplina_nome              AS disciplina_nome,
			       ch.carga_horaria_aulas         AS aulas
			FROM cargas_horarias ch
			JOIN disciplinas d
			  ON d.disciplina_id = ch.carga_horaria_disciplina_id AND d.disciplina_deleted_at IS NULL
			WHERE ch.carga_horaria_escola_id = ? AND ch.carga_horaria_turma_id = ?
			ORDER BY d.disciplina_nome, d.disciplina_id`,
			escolaID, turmaID,
		).Scan(&rows).Error; err != nil {
			log.Printf("[CargaHoraria.Listar] %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar cargas horárias")
		}

		return helper.JsonOK(c, "Cargas horárias carregadas", fiber.Map{
			"turma_id": turmaID,
			"itens":    cargasParaResponse(rows),
		})
	}

	// listagem geral paginada
	paging := helper.ResolvePaging(c, 50, 200)

	base := db.Table("cargas_horarias ch").
		Joins("JOIN disciplinas d ON d.disciplina_id = ch.carga_horaria_disciplina_id AND d.disciplina_deleted_at IS NULL").
		Joins("JOIN turmas t ON t.turma_id = ch.carga_horaria_turma_id AND t.turma_deleted_at IS NULL").
		Where("ch.carga_horaria_escola_id = ?", escolaID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[CargaHoraria.Listar] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar cargas horárias")
	}

	var rows []cargaRow
	if err := base.
		Select(`ch.carga_horaria_turma_id AS turma_id,
			ch.carga_horaria_disciplina_id AS disciplina_id,
			d.disciplina_nome AS disciplina_nome,
			ch.carga_horaria_aulas AS aulas`).
		Order("t.turma_nome, d.disciplina_nome, d.disciplina_id").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		log.Printf("[CargaHoraria.Listar] page: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar cargas horárias")
	}

	return helper.JsonList(c, "Cargas horárias carregadas",
		cargasParaResponse(rows),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit),
	)
}

func cargasParaResponse(rows []cargaRow) []dto.CargaHorariaResponse {
	out := make([]dto.CargaHorariaResponse, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, dto.CargaHorariaResponse{
			TurmaID:        r.TurmaID,
			DisciplinaID:   r.DisciplinaID,
			DisciplinaNome: r.DisciplinaNome,
			Aulas:          r.Aulas,
		})
	}
	return out
}

/* =======================================================
   POST /cargas-horarias/definir
======================================================= */

// Definir substitui a lista de cargas da turma numa transação: apaga as
// antigas e grava as novas (deduplicadas por disciplina, a última vence).
// Lista vazia zera a turma.
func (ctl *CargaHorariaController) Definir(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.DefinirCargasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()

	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// a turma precisa ser da escola do token
	var existe int64
	if err := ctl.DB.WithContext(c.Context()).Table("turmas").
		Where("turma_id = ? AND turma_escola_id = ? AND turma_deleted_at IS NULL", req.TurmaID, escolaID).
		Count(&existe).Error; err != nil {
		log.Printf("[CargaHoraria.Definir] turma: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao verificar a turma")
	}
	if existe == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Turma não encontrada nesta escola")
	}

	novas := req.ToModels(escolaID)

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("carga_horaria_escola_id = ? AND carga_horaria_turma_id = ?", escolaID, req.TurmaID).
			Delete(&m.CargaHorariaModel{}).Error; err != nil {
			return err
		}
		if len(novas) == 0 {
			return nil
		}
		return tx.Create(&novas).Error
	})
	if err != nil {
		log.Printf("[CargaHoraria.Definir] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gravar cargas horárias; nada foi alterado")
	}

	return helper.JsonUpdated(c, "Cargas horárias definidas", fiber.Map{
		"turma_id": req.TurmaID,
		"total":    len(novas),
	})
}
