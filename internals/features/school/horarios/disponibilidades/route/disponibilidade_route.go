// internals/features/school/horarios/disponibilidades/route/disponibilidade_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dctl "minhaescola_backend/internals/features/school/horarios/disponibilidades/controller"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// DisponibilidadeRoutes monta o quadro de disponibilidade e as preferências
// dos professores. Leitura para a equipe, escrita só para admin.
func DisponibilidadeRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := dctl.NewDisponibilidadeController(db, validator.New())

	disp := admin.Group("/disponibilidades")
	disp.Get("/", featureMw.IsEscolaStaff(), ctl.Listar)
	disp.Post("/upsert", featureMw.IsEscolaAdmin(), ctl.Upsert)

	pref := admin.Group("/preferencias")
	pref.Get("/", featureMw.IsEscolaStaff(), ctl.ListarPreferencias)
	pref.Post("/upsert", featureMw.IsEscolaAdmin(), ctl.UpsertPreferencia)
}
