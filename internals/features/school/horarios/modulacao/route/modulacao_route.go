// internals/features/school/horarios/modulacao/route/modulacao_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	mctl "minhaescola_backend/internals/features/school/horarios/modulacao/controller"
	"minhaescola_backend/internals/middlewares"
	featureMw "minhaescola_backend/internals/middlewares/features"
)

// ModulacaoRoutes monta os vínculos professor × disciplina × turma.
// O upsert em massa carrega lotes grandes e fica atrás do limitador pesado.
func ModulacaoRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := mctl.NewModulacaoController(db, validator.New())

	grp := admin.Group("/modulacao")
	grp.Get("/", featureMw.IsEscolaStaff(), ctl.Listar)
	grp.Post("/upsert", featureMw.IsEscolaAdmin(), middlewares.HeavyWriteRateLimiter(), ctl.BulkUpsert)
	grp.Post("/remover", featureMw.IsEscolaAdmin(), ctl.RemoverLote)
}
