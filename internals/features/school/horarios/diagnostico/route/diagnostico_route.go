// internals/features/school/horarios/diagnostico/route/diagnostico_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dgctl "minhaescola_backend/internals/features/school/horarios/diagnostico/controller"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// DiagnosticoRoutes monta o raio-x de capacidade do turno (somente leitura).
func DiagnosticoRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := dgctl.NewDiagnosticoController(db)

	grp := admin.Group("/horarios")
	grp.Get("/diagnostico", featureMw.IsEscolaStaff(), ctl.Diagnosticar)
}
