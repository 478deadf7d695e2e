// internals/features/school/horarios/disponibilidades/controller/disponibilidade_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/disponibilidades/dto"
	m "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// DisponibilidadeController gerencia o quadro de disponibilidade dos
// professores: padrão por dia e exceções por período.
type DisponibilidadeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDisponibilidadeController(db *gorm.DB, v *validator.Validate) *DisponibilidadeController {
	return &DisponibilidadeController{DB: db, Validate: v}
}

/* =======================================================
   GET /disponibilidades?turno=&professor_id=&dia_semana=
======================================================= */

// Listar devolve o quadro do professor no turno. Sem dia_semana, responde os
// seis dias preenchendo os ausentes como livre (ausência de registro = livre).
func (ctl *DisponibilidadeController) Listar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}
	professorID, err := uuid.Parse(strings.TrimSpace(c.Query("professor_id")))
	if err != nil || professorID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "professor_id inválido")
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("disponibilidade_escola_id = ? AND disponibilidade_professor_id = ? AND disponibilidade_turno = ?",
			escolaID, professorID, turno)

	if diaStr := strings.TrimSpace(c.Query("dia_semana")); diaStr != "" {
		dia, err := strconv.Atoi(diaStr)
		if err != nil || !constants.DiaSemanaValido(dia) {
			return helper.JsonError(c, fiber.StatusBadRequest, "dia_semana inválido (1=segunda ... 6=sábado)")
		}
		q = q.Where("disponibilidade_dia_semana = ?", dia)
	}

	var linhas []m.DisponibilidadeModel
	if err := q.Order("disponibilidade_dia_semana").Find(&linhas).Error; err != nil {
		log.Printf("[Disponibilidade.Listar] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar disponibilidades")
	}

	porDia := make(map[int]*m.DisponibilidadeModel, len(linhas))
	for i := range linhas {
		porDia[linhas[i].DisponibilidadeDiaSemana] = &linhas[i]
	}

	dias := make([]dto.DisponibilidadeResponse, 0, constants.DiaSemanaMax)
	if diaStr := strings.TrimSpace(c.Query("dia_semana")); diaStr != "" {
		dia, _ := strconv.Atoi(diaStr)
		if d, ok := porDia[dia]; ok {
			dias = append(dias, dto.FromModel(d))
		} else {
			dias = append(dias, dto.PadraoPara(professorID, turno, dia))
		}
	} else {
		for dia := constants.DiaSemanaMin; dia <= constants.DiaSemanaMax; dia++ {
			if d, ok := porDia[dia]; ok {
				dias = append(dias, dto.FromModel(d))
			} else {
				dias = append(dias, dto.PadraoPara(professorID, turno, dia))
			}
		}
	}

	return helper.JsonOK(c, "Disponibilidades carregadas", fiber.Map{
		"professor_id": professorID,
		"turno":        turno,
		"dias":         dias,
	})
}

/* =======================================================
   POST /disponibilidades/upsert
======================================================= */

// Upsert substitui a linha inteira do (professor, turno, dia): padrão e
// exceções já sanitizadas pelo DTO.
func (ctl *DisponibilidadeController) Upsert(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertDisponibilidadeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()

	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	linha, err := req.ToModel(escolaID)
	if err != nil {
		log.Printf("[Disponibilidade.Upsert] serializar exceções: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao preparar a gravação")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "disponibilidade_escola_id"},
				{Name: "disponibilidade_professor_id"},
				{Name: "disponibilidade_turno"},
				{Name: "disponibilidade_dia_semana"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"disponibilidade_status_padrao",
				"disponibilidade_excecoes",
			}),
		}).
		Create(linha).Error; err != nil {
		log.Printf("[Disponibilidade.Upsert] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gravar a disponibilidade")
	}

	return helper.JsonUpdated(c, "Disponibilidade gravada", dto.FromModel(linha))
}

/* =======================================================
   PREFERÊNCIAS (informativas, nunca bloqueiam)
======================================================= */

// GET /preferencias?turno=&professor_id=
func (ctl *DisponibilidadeController) ListarPreferencias(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}
	professorID, err := uuid.Parse(strings.TrimSpace(c.Query("professor_id")))
	if err != nil || professorID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "professor_id inválido")
	}

	var pref m.PreferenciaModel
	err = ctl.DB.WithContext(c.Context()).
		Where("preferencia_escola_id = ? AND preferencia_professor_id = ? AND preferencia_turno = ?",
			escolaID, professorID, turno).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// sem registro: preferências zeradas
		return helper.JsonOK(c, "Preferências carregadas", dto.PreferenciaResponse{
			ProfessorID:      professorID,
			Turno:            turno,
			PeriodosEvitados: []int{},
		})
	}
	if err != nil {
		log.Printf("[Preferencia.Listar] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar preferências")
	}

	return helper.JsonOK(c, "Preferências carregadas", dto.PreferenciaFromModel(&pref))
}

// POST /preferencias/upsert
func (ctl *DisponibilidadeController) UpsertPreferencia(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertPreferenciaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()

	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	pref := req.ToModel(escolaID)
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "preferencia_escola_id"},
				{Name: "preferencia_professor_id"},
				{Name: "preferencia_turno"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferencia_aulas_geminadas",
				"preferencia_evitar_janelas",
				"preferencia_max_aulas_dia_turma",
				"preferencia_periodos_evitados",
			}),
		}).
		Create(pref).Error; err != nil {
		log.Printf("[Preferencia.Upsert] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gravar preferências")
	}

	return helper.JsonUpdated(c, "Preferências gravadas", dto.PreferenciaFromModel(pref))
}
