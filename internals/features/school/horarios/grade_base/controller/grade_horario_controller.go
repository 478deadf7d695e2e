// internals/features/school/horarios/grade_base/controller/grade_horario_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/grade_base/dto"
	m "minhaescola_backend/internals/features/school/horarios/grade_base/model"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// GradeHorarioController define a malha de horários do turno: quais períodos
// existem em cada dia e seus intervalos de relógio.
type GradeHorarioController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGradeHorarioController(db *gorm.DB, v *validator.Validate) *GradeHorarioController {
	return &GradeHorarioController{DB: db, Validate: v}
}

/* =======================================================
   GET /grade/base?turno=
======================================================= */

func (ctl *GradeHorarioController) Listar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}

	var entradas []m.GradeHorarioModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("grade_horario_escola_id = ? AND grade_horario_turno = ?", escolaID, turno).
		Order("grade_horario_dia_semana, grade_horario_periodo").
		Find(&entradas).Error; err != nil {
		log.Printf("[GradeBase.Listar] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar a grade base")
	}

	return helper.JsonOK(c, "Grade base carregada", fiber.Map{
		"turno":    turno,
		"entradas": dto.FromModels(entradas),
	})
}

/* =======================================================
   PUT /grade/base
======================================================= */

// Substituir redefine a malha do turno: upsert das células enviadas e remoção
// das que ficaram de fora, tudo numa transação.
func (ctl *GradeHorarioController) Substituir(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertGradeBaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()

	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.ValidarHorarios(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	novos := req.ToModels(escolaID)

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		// células que saíram da definição não sobrevivem ao PUT
		chaves := make([][]interface{}, 0, len(novos))
		for i := range novos {
			chaves = append(chaves, []interface{}{novos[i].GradeHorarioDiaSemana, novos[i].GradeHorarioPeriodo})
		}
		if err := tx.
			Where("grade_horario_escola_id = ? AND grade_horario_turno = ?", escolaID, req.Turno).
			Where("(grade_horario_dia_semana, grade_horario_periodo) NOT IN ?", chaves).
			Delete(&m.GradeHorarioModel{}).Error; err != nil {
			return err
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "grade_horario_escola_id"},
					{Name: "grade_horario_turno"},
					{Name: "grade_horario_dia_semana"},
					{Name: "grade_horario_periodo"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"grade_horario_inicio", "grade_horario_fim"}),
			}).
			Create(&novos).Error
	})
	if err != nil {
		log.Printf("[GradeBase.Substituir] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gravar a grade base")
	}

	return helper.JsonUpdated(c, "Grade base atualizada", fiber.Map{
		"turno":    req.Turno,
		"entradas": dto.FromModels(novos),
	})
}
