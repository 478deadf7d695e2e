// internals/features/school/horarios/cargas_horarias/route/carga_horaria_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cctl "minhaescola_backend/internals/features/school/horarios/cargas_horarias/controller"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// CargaHorariaRoutes monta a definição de cargas semanais por turma.
func CargaHorariaRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := cctl.NewCargaHorariaController(db, validator.New())

	grp := admin.Group("/cargas-horarias")
	grp.Get("/", featureMw.IsEscolaStaff(), ctl.Listar)
	grp.Post("/definir", featureMw.IsEscolaAdmin(), ctl.Definir)
}
