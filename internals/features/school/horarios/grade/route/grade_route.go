// internals/features/school/horarios/grade/route/grade_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gctl "minhaescola_backend/internals/features/school/horarios/grade/controller"
	"minhaescola_backend/internals/middlewares"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// GradeRoutes monta o editor da grade: simulação e leituras para a equipe,
// gravações para admin, publicação atrás do limitador pesado.
func GradeRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := gctl.NewGradeController(db, validator.New())

	grp := admin.Group("/grade")

	// leitura / simulação
	grp.Post("/validate-slot", featureMw.IsEscolaStaff(), ctl.ValidarSlot)
	grp.Get("/rascunho", featureMw.IsEscolaStaff(), ctl.ObterRascunho)
	grp.Get("/publicado", featureMw.IsEscolaStaff(), ctl.ObterPublicada)

	// edição célula a célula
	grp.Post("/slot/upsert", featureMw.IsEscolaAdmin(), ctl.UpsertSlot)
	grp.Post("/slot/remove", featureMw.IsEscolaAdmin(), ctl.RemoverSlot)
	grp.Post("/slot/mover", featureMw.IsEscolaAdmin(), ctl.MoverSlot)
	grp.Post("/slot/travar", featureMw.IsEscolaAdmin(), ctl.TravarSlot)
	grp.Post("/slot/destravar", featureMw.IsEscolaAdmin(), ctl.DestravarSlot)

	// operações de lote
	grp.Post("/rascunho", featureMw.IsEscolaAdmin(), ctl.SubstituirRascunho)
	grp.Post("/publicar", featureMw.IsEscolaAdmin(), middlewares.HeavyWriteRateLimiter(), ctl.Publicar)
}
