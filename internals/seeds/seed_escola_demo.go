// internals/seeds/seed_escola_demo.go
package seeds

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"minhaescola_backend/internals/constants"
	cadastroModel "minhaescola_backend/internals/features/school/cadastros/model"
	cargaModel "minhaescola_backend/internals/features/school/horarios/cargas_horarias/model"
	dispModel "minhaescola_backend/internals/features/school/horarios/disponibilidades/model"
	gradeBaseModel "minhaescola_backend/internals/features/school/horarios/grade_base/model"
	modulacaoModel "minhaescola_backend/internals/features/school/horarios/modulacao/model"
)

// SeedEscolaDemo cria uma escola de demonstração completa para dev: cadastros,
// cargas horárias, modulação, disponibilidades e malha base dos turnos.
// Idempotente: se a escola já existir, nada é inserido.
func SeedEscolaDemo(db *gorm.DB) error {
	const nomeEscola = "Escola Municipal de Demonstração"

	var total int64
	if err := db.Model(&cadastroModel.EscolaModel{}).
		Where("escola_nome = ?", nomeEscola).
		Count(&total).Error; err != nil {
		return fmt.Errorf("verificar escola demo: %w", err)
	}
	if total > 0 {
		log.Println("ℹ️ Escola demo já existe, seed ignorado.")
		return nil
	}

	escolaID := uuid.New()

	profAna := uuid.New()
	profBruno := uuid.New()
	profCarla := uuid.New()

	turma6A := uuid.New()
	turma6B := uuid.New()
	turma7A := uuid.New()

	discMatematica := uuid.New()
	discPortugues := uuid.New()
	discHistoria := uuid.New()
	discCiencias := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		escola := cadastroModel.EscolaModel{
			EscolaID:    escolaID,
			EscolaNome:  nomeEscola,
			EscolaAtiva: true,
		}
		if err := tx.Create(&escola).Error; err != nil {
			return fmt.Errorf("escola: %w", err)
		}

		professores := []cadastroModel.ProfessorModel{
			{
				ProfessorID:           profAna,
				ProfessorEscolaID:     escolaID,
				ProfessorNome:         "Ana Lima",
				ProfessorAtivo:        true,
				ProfessorCargaHoraria: 40,
				ProfessorTurnos:       []string{constants.TurnoMatutino, constants.TurnoVespertino},
			},
			{
				ProfessorID:           profBruno,
				ProfessorEscolaID:     escolaID,
				ProfessorNome:         "Bruno Castro",
				ProfessorAtivo:        true,
				ProfessorCargaHoraria: 20,
				ProfessorTurnos:       []string{constants.TurnoMatutino},
			},
			{
				ProfessorID:           profCarla,
				ProfessorEscolaID:     escolaID,
				ProfessorNome:         "Carla Dias",
				ProfessorAtivo:        true,
				ProfessorCargaHoraria: 30,
				ProfessorTurnos:       []string{constants.TurnoMatutino, constants.TurnoVespertino},
			},
		}
		if err := tx.Create(&professores).Error; err != nil {
			return fmt.Errorf("professores: %w", err)
		}

		turmas := []cadastroModel.TurmaModel{
			{TurmaID: turma6A, TurmaEscolaID: escolaID, TurmaNome: "6º Ano A", TurmaTurno: constants.TurnoMatutino, TurmaSerie: "6º ano", TurmaAtiva: true},
			{TurmaID: turma6B, TurmaEscolaID: escolaID, TurmaNome: "6º Ano B", TurmaTurno: constants.TurnoMatutino, TurmaSerie: "6º ano", TurmaAtiva: true},
			{TurmaID: turma7A, TurmaEscolaID: escolaID, TurmaNome: "7º Ano A", TurmaTurno: constants.TurnoVespertino, TurmaSerie: "7º ano", TurmaAtiva: true},
		}
		if err := tx.Create(&turmas).Error; err != nil {
			return fmt.Errorf("turmas: %w", err)
		}

		disciplinas := []cadastroModel.DisciplinaModel{
			{DisciplinaID: discMatematica, DisciplinaEscolaID: escolaID, DisciplinaNome: "Matemática", DisciplinaCarga: 5, DisciplinaAtiva: true},
			{DisciplinaID: discPortugues, DisciplinaEscolaID: escolaID, DisciplinaNome: "Português", DisciplinaCarga: 5, DisciplinaAtiva: true},
			{DisciplinaID: discHistoria, DisciplinaEscolaID: escolaID, DisciplinaNome: "História", DisciplinaCarga: 3, DisciplinaAtiva: true},
			{DisciplinaID: discCiencias, DisciplinaEscolaID: escolaID, DisciplinaNome: "Ciências", DisciplinaCarga: 3, DisciplinaAtiva: true},
		}
		if err := tx.Create(&disciplinas).Error; err != nil {
			return fmt.Errorf("disciplinas: %w", err)
		}

		// demanda: cada turma recebe as quatro disciplinas com a carga padrão
		var cargas []cargaModel.CargaHorariaModel
		for _, t := range turmas {
			for _, d := range disciplinas {
				cargas = append(cargas, cargaModel.CargaHorariaModel{
					CargaHorariaEscolaID:     escolaID,
					CargaHorariaTurmaID:      t.TurmaID,
					CargaHorariaDisciplinaID: d.DisciplinaID,
					CargaHorariaAulas:        d.DisciplinaCarga,
				})
			}
		}
		if err := tx.Create(&cargas).Error; err != nil {
			return fmt.Errorf("cargas horárias: %w", err)
		}

		// oferta: vínculos gerais por disciplina, mais um vínculo por turma
		modulacoes := []modulacaoModel.ModulacaoModel{
			{ModulacaoEscolaID: escolaID, ModulacaoProfessorID: profAna, ModulacaoDisciplinaID: discMatematica, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 15},
			{ModulacaoEscolaID: escolaID, ModulacaoProfessorID: profBruno, ModulacaoDisciplinaID: discPortugues, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 10},
			{ModulacaoEscolaID: escolaID, ModulacaoProfessorID: profCarla, ModulacaoDisciplinaID: discHistoria, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 9},
			{ModulacaoEscolaID: escolaID, ModulacaoProfessorID: profCarla, ModulacaoDisciplinaID: discCiencias, ModulacaoTurmaID: uuid.Nil, ModulacaoAulas: 9},
			{ModulacaoEscolaID: escolaID, ModulacaoProfessorID: profAna, ModulacaoDisciplinaID: discPortugues, ModulacaoTurmaID: turma6B, ModulacaoAulas: 5},
		}
		if err := tx.Create(&modulacoes).Error; err != nil {
			return fmt.Errorf("modulações: %w", err)
		}

		// Bruno não trabalha na sexta; Ana evita o último período da quarta
		disponibilidades := []dispModel.DisponibilidadeModel{
			{
				DisponibilidadeEscolaID:     escolaID,
				DisponibilidadeProfessorID:  profBruno,
				DisponibilidadeTurno:        constants.TurnoMatutino,
				DisponibilidadeDiaSemana:    5,
				DisponibilidadeStatusPadrao: constants.DisponibilidadeIndisponivel,
			},
			{
				DisponibilidadeEscolaID:     escolaID,
				DisponibilidadeProfessorID:  profAna,
				DisponibilidadeTurno:        constants.TurnoMatutino,
				DisponibilidadeDiaSemana:    3,
				DisponibilidadeStatusPadrao: constants.DisponibilidadeLivre,
				DisponibilidadeExcecoes:     datatypes.JSON([]byte(`[{"periodo":5,"status":"evitar"}]`)),
			},
		}
		if err := tx.Create(&disponibilidades).Error; err != nil {
			return fmt.Errorf("disponibilidades: %w", err)
		}

		// malha base: segunda a sexta, cinco períodos por turno
		horarios := map[string][2][5]string{
			constants.TurnoMatutino: {
				{"07:00", "07:50", "08:40", "09:50", "10:40"},
				{"07:50", "08:40", "09:30", "10:40", "11:30"},
			},
			constants.TurnoVespertino: {
				{"13:00", "13:50", "14:40", "15:50", "16:40"},
				{"13:50", "14:40", "15:30", "16:40", "17:30"},
			},
		}
		var malha []gradeBaseModel.GradeHorarioModel
		for turno, faixas := range horarios {
			for dia := 1; dia <= 5; dia++ {
				for periodo := 1; periodo <= 5; periodo++ {
					malha = append(malha, gradeBaseModel.GradeHorarioModel{
						GradeHorarioEscolaID:  escolaID,
						GradeHorarioTurno:     turno,
						GradeHorarioDiaSemana: dia,
						GradeHorarioPeriodo:   periodo,
						GradeHorarioInicio:    faixas[0][periodo-1],
						GradeHorarioFim:       faixas[1][periodo-1],
					})
				}
			}
		}
		if err := tx.Create(&malha).Error; err != nil {
			return fmt.Errorf("malha base: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Escola demo criada (escola_id=%s).", escolaID)
	return nil
}
