// internals/features/school/horarios/grade_base/route/grade_base_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gbctl "minhaescola_backend/internals/features/school/horarios/grade_base/controller"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// GradeBaseRoutes monta a malha de horários sob o grupo escolar autenticado:
// leitura para a equipe, definição só para admin.
func GradeBaseRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := gbctl.NewGradeHorarioController(db, validator.New())

	grp := admin.Group("/grade")
	grp.Get("/base", featureMw.IsEscolaStaff(), ctl.Listar)
	grp.Put("/base", featureMw.IsEscolaAdmin(), ctl.Substituir)
}
