// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cargaRoute "minhaescola_backend/internals/features/school/horarios/cargas_horarias/route"
	diagRoute "minhaescola_backend/internals/features/school/horarios/diagnostico/route"
	dispRoute "minhaescola_backend/internals/features/school/horarios/disponibilidades/route"
	gradeRoute "minhaescola_backend/internals/features/school/horarios/grade/route"
	gradeBaseRoute "minhaescola_backend/internals/features/school/horarios/grade_base/route"
	modRoute "minhaescola_backend/internals/features/school/horarios/modulacao/route"

	escolaMiddleware "minhaescola_backend/internals/middlewares/auth_escola"
	featuresMiddleware "minhaescola_backend/internals/middlewares/features"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== ADMIN (por escola) =====================
	// Auth + escopo de escola; o papel exigido (admin/equipe) é checado rota a
	// rota dentro de cada feature.
	log.Println("[INFO] Montando grupo ADMIN (/api/a)...")
	admin := app.Group("/api/a",
		escolaMiddleware.AuthJWT(escolaMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		featuresMiddleware.UseEscolaScope(),
	)

	// ===================== HORÁRIOS =====================
	log.Println("[INFO] Montando rotas de grade base...")
	gradeBaseRoute.GradeBaseRoutes(admin, db)

	log.Println("[INFO] Montando rotas de disponibilidades...")
	dispRoute.DisponibilidadeRoutes(admin, db)

	log.Println("[INFO] Montando rotas de modulação...")
	modRoute.ModulacaoRoutes(admin, db)

	log.Println("[INFO] Montando rotas de cargas horárias...")
	cargaRoute.CargaHorariaRoutes(admin, db)

	log.Println("[INFO] Montando rotas da grade horária...")
	gradeRoute.GradeRoutes(admin, db)

	log.Println("[INFO] Montando rotas de diagnóstico...")
	diagRoute.DiagnosticoRoutes(admin, db)
}
