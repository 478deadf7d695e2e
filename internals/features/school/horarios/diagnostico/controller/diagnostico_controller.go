// internals/features/school/horarios/diagnostico/controller/diagnostico_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minhaescola_backend/internals/constants"
	service "minhaescola_backend/internals/features/school/horarios/diagnostico/service"
	helper "minhaescola_backend/internals/helpers"
	helperAuth "minhaescola_backend/internals/helpers/auth"
)

// DiagnosticoController responde o raio-x de capacidade do turno: demanda das
// turmas contra oferta da modulação, disciplina a disciplina.
type DiagnosticoController struct {
	Service *service.DiagnosticoService
}

func NewDiagnosticoController(db *gorm.DB) *DiagnosticoController {
	return &DiagnosticoController{Service: service.NewDiagnosticoService(db)}
}

// GET /horarios/diagnostico?turno=
func (ctl *DiagnosticoController) Diagnosticar(c *fiber.Ctx) error {
	escolaID, err := helperAuth.GetEscolaIDFromToken(c)
	if err != nil {
		return err
	}

	turno := strings.ToLower(strings.TrimSpace(c.Query("turno")))
	if !constants.TurnoValido(turno) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Informe um turno válido (matutino, vespertino ou noturno)")
	}

	resp, err := ctl.Service.Diagnosticar(c.Context(), escolaID, turno)
	if err != nil {
		log.Printf("[Diagnostico] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao montar o diagnóstico")
	}

	return helper.JsonOK(c, "Diagnóstico montado", resp)
}
