package database

import (
	"gorm.io/gorm"

	cadastroModel "minhaescola_backend/internals/features/school/cadastros/model"
	cargaModel "minhaescola_backend/internals/features/school/horarios/cargas_horarias/model"
	dispModel "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
	gradeModel "minhaescola_backend/internals/features/school/horarios/grade/model"
	gradeBaseModel "minhaescola_backend/internals/features/school/horarios/grade_base/model"
	modulacaoModel "minhaescola_backend/internals/features/school/horarios/modulacao/model"
)

// MigrateAll sobe o schema via AutoMigrate (dev/teste; produção usa migrações versionadas).
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&cadastroModel.EscolaModel{},
		&cadastroModel.ProfessorModel{},
		&cadastroModel.TurmaModel{},
		&cadastroModel.DisciplinaModel{},
		&cargaModel.CargaHorariaModel{},
		&modulacaoModel.ModulacaoModel{},
		&dispModel.DisponibilidadeModel{},
		&dispModel.PreferenciaModel{},
		&gradeBaseModel.GradeHorarioModel{},
		&gradeModel.GradeResultadoModel{},
		&gradeModel.GradeSlotModel{},
	)
}
