// internals/features/school/horarios/grade/controller/grade_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minhaescola_backend/internals/constants"
	dto "minhaescola_backend/internals/features/school/horarios/grade/dto"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
	service "minhaescola_backend/internals/features/school/horarios/grade/service"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// GradeController expõe a edição da grade horária: simulação, gravação célula
// a célula, movimentação, travas, substituição integral e publicação.
type GradeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.GradeService
}

func NewGradeController(db *gorm.DB, v *validator.Validate) *GradeController {
	return &GradeController{DB: db, Validate: v, Service: service.NewGradeService(db)}
}

// responderErroGrade traduz os erros do serviço para o contrato HTTP:
// rejeição com código estável vira 409 (NO_DRAFT vira 404), aula inexistente
// vira 404, o resto é 500 com mensagem genérica.
func responderErroGrade(c *fiber.Ctx, op string, err error) error {
	var conflito *service.ErroConflito
	if errors.As(err, &conflito) {
		if conflito.Codigo == service.CodigoSemRascunho {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, conflito.Codigo, conflito.Mensagem)
		}
		return helper.JsonConflict(c, conflito.Codigo, conflito.Mensagem)
	}
	if errors.Is(err, service.ErrAulaNaoEncontrada) {
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	}
	log.Printf("[Grade.%s] %v", op, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao processar a grade")
}

/* =======================================================
   POST /grade/validate-slot  (simulação, nada é gravado)
======================================================= */

func (ctl *GradeController) ValidarSlot(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PropostaSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	veredito, err := ctl.Service.SimularProposta(c.Context(), escolaID, req)
	if err != nil {
		return responderErroGrade(c, "ValidarSlot", err)
	}

	return helper.JsonOK(c, "Proposta avaliada", dto.VereditoResponse{
		OK:       veredito.OK,
		Codigo:   veredito.Codigo,
		Mensagem: veredito.Mensagem,
	})
}

/* =======================================================
   POST /grade/slot/upsert
======================================================= */

func (ctl *GradeController) UpsertSlot(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	ator, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PropostaSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	slot, err := ctl.Service.UpsertSlot(c.Context(), escolaID, ator, req)
	if err != nil {
		return responderErroGrade(c, "UpsertSlot", err)
	}

	return helper.JsonUpdated(c, "Aula gravada", dto.FromSlotModel(slot))
}

/* =======================================================
   POST /grade/slot/remove
======================================================= */

func (ctl *GradeController) RemoverSlot(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RemoverSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Turno = strings.ToLower(strings.TrimSpace(req.Turno))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	removido, err := ctl.Service.RemoverSlot(c.Context(), escolaID, req)
	if err != nil {
		return responderErroGrade(c, "RemoverSlot", err)
	}

	return helper.JsonOK(c, "Remoção processada", fiber.Map{"removido": removido})
}

/* =======================================================
   POST /grade/slot/mover  (atômico: ou move, ou nada)
======================================================= */

func (ctl *GradeController) MoverSlot(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	ator, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.MoverSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Turno = strings.ToLower(strings.TrimSpace(req.Turno))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	slot, err := ctl.Service.MoverSlot(c.Context(), escolaID, ator, req)
	if err != nil {
		return responderErroGrade(c, "MoverSlot", err)
	}

	return helper.JsonUpdated(c, "Aula movida", dto.FromSlotModel(slot))
}

/* =======================================================
   POST /grade/slot/travar | /grade/slot/destravar
======================================================= */

func (ctl *GradeController) TravarSlot(c *fiber.Ctx) error {
	return ctl.mudarTrava(c, true)
}

func (ctl *GradeController) DestravarSlot(c *fiber.Ctx) error {
	return ctl.mudarTrava(c, false)
}

func (ctl *GradeController) mudarTrava(c *fiber.Ctx, travar bool) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	ator, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.TravaSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Turno = strings.ToLower(strings.TrimSpace(req.Turno))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var slot *gradeModel.GradeSlotModel
	if travar {
		slot, err = ctl.Service.TravarSlot(c.Context(), escolaID, ator, req)
	} else {
		slot, err = ctl.Service.DestravarSlot(c.Context(), escolaID, ator, req)
	}
	if err != nil {
		return responderErroGrade(c, "Trava", err)
	}

	msg := "Aula travada"
	if !travar {
		msg = "Aula destravada"
	}
	return helper.JsonUpdated(c, msg, dto.FromSlotModel(slot))
}

/* =======================================================
   POST /grade/rascunho  (substituição integral)
   GET  /grade/rascunho
======================================================= */

func (ctl *GradeController) SubstituirRascunho(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	ator, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubstituirGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Turno = strings.ToLower(strings.TrimSpace(req.Turno))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	resultado, slots, err := ctl.Service.SubstituirGrade(c.Context(), escolaID, ator, req)
	if err != nil {
		return responderErroGrade(c, "SubstituirRascunho", err)
	}

	return helper.JsonUpdated(c, "Rascunho substituído", dto.FromResultadoModel(resultado, slots))
}

func (ctl *GradeController) ObterRascunho(c *fiber.Ctx) error {
	return ctl.obterGrade(c, constants.GradeStatusDraft, "Rascunho carregado", "Ainda não há rascunho para esse turno")
}

/* =======================================================
   POST /grade/publicar
   GET  /grade/publicado
======================================================= */

func (ctl *GradeController) Publicar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}
	ator, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PublicarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	req.Turno = strings.ToLower(strings.TrimSpace(req.Turno))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	resultado, slots, err := ctl.Service.Publicar(c.Context(), escolaID, ator, req)
	if err != nil {
		return responderErroGrade(c, "Publicar", err)
	}

	return helper.JsonOK(c, "Grade publicada", dto.FromResultadoModel(resultado, slots))
}

func (ctl *GradeController) ObterPublicada(c *fiber.Ctx) error {
	return ctl.obterGrade(c, constants.GradeStatusPublished, "Grade publicada carregada", "Não há grade publicada para esse turno")
}

func (ctl *GradeController) obterGrade(c *fiber.Ctx, status, okMsg, aviso string) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}

	resultado, slots, err := ctl.Service.ObterGrade(c.Context(), escolaID, turno, status)
	if err != nil {
		return responderErroGrade(c, "ObterGrade", err)
	}
	if resultado == nil {
		if status == constants.GradeStatusPublished {
			return helper.JsonError(c, fiber.StatusNotFound, aviso)
		}
		// rascunho inexistente: grade vazia, nada de 404 no editor
		return helper.JsonOK(c, aviso, nil)
	}

	return helper.JsonOK(c, okMsg, dto.FromResultadoModel(resultado, slots))
}
