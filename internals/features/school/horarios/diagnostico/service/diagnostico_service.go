// internals/features/school/horarios/diagnostico/service/diagnostico_service.go
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "minhaescola_backend/internals/features/school/horarios/diagnostico/dto"
)

// DiagnosticoService compara demanda (cargas horárias das turmas do turno)
// com oferta (modulação dos professores ativos). Só leitura.
type DiagnosticoService struct {
	DB *gorm.DB
}

func NewDiagnosticoService(db *gorm.DB) *DiagnosticoService {
	return &DiagnosticoService{DB: db}
}

/* =======================================================
   FATOS CARREGADOS
======================================================= */

// CargaRow é uma carga horária de turma do turno, já com os nomes juntados.
type CargaRow struct {
	TurmaID        uuid.UUID `gorm:"column:turma_id"`
	TurmaNome      string    `gorm:"column:turma_nome"`
	DisciplinaID   uuid.UUID `gorm:"column:disciplina_id"`
	DisciplinaNome string    `gorm:"column:disciplina_nome"`
	Aulas          int       `gorm:"column:aulas"`
}

// VinculoRow é uma modulação de professor ativo, com o turno da turma (quando
// o vínculo é de turma) e os turnos do professor (para o vínculo geral).
type VinculoRow struct {
	ProfessorID     uuid.UUID      `gorm:"column:professor_id"`
	DisciplinaID    uuid.UUID      `gorm:"column:disciplina_id"`
	DisciplinaNome  string         `gorm:"column:disciplina_nome"`
	TurmaID         uuid.UUID      `gorm:"column:turma_id"`
	Aulas           int            `gorm:"column:aulas"`
	TurmaTurno      *string        `gorm:"column:turma_turno"`
	ProfessorTurnos pq.StringArray `gorm:"column:professor_turnos;type:text[]"`
}

// contaParaTurno decide se a oferta do vínculo entra na conta do turno:
// vínculo de turma conta quando a turma é daquele turno; vínculo geral
// (sem turma) conta quando o professor atende o turno.
func (v *VinculoRow) contaParaTurno(turno string) bool {
	if v.TurmaID != uuid.Nil {
		return v.TurmaTurno != nil && *v.TurmaTurno == turno
	}
	for _, t := range v.ProfessorTurnos {
		if t == turno {
			return true
		}
	}
	return false
}

/* =======================================================
   CÁLCULO (puro, sem banco)
======================================================= */

// CalcularDiagnostico agrega demanda e oferta por disciplina e o detalhamento
// por turma. Disciplinas sem demanda nem oferta não aparecem. Ordenação por
// nome de disciplina, id como desempate.
func CalcularDiagnostico(turno string, cargas []CargaRow, vinculos []VinculoRow) dto.DiagnosticoResponse {
	type acumulado struct {
		nome        string
		demanda     int
		oferta      int
		professores map[uuid.UUID]struct{}
	}
	porDisciplina := map[uuid.UUID]*acumulado{}
	garantir := func(id uuid.UUID, nome string) *acumulado {
		a, ok := porDisciplina[id]
		if !ok {
			a = &acumulado{nome: nome, professores: map[uuid.UUID]struct{}{}}
			porDisciplina[id] = a
		}
		if a.nome == "" {
			a.nome = nome
		}
		return a
	}

	porTurma := map[uuid.UUID]*dto.DemandaTurma{}
	for i := range cargas {
		c := &cargas[i]
		garantir(c.DisciplinaID, c.DisciplinaNome).demanda += c.Aulas

		t, ok := porTurma[c.TurmaID]
		if !ok {
			t = &dto.DemandaTurma{TurmaID: c.TurmaID, TurmaNome: c.TurmaNome}
			porTurma[c.TurmaID] = t
		}
		t.TotalAulas += c.Aulas
	}

	for i := range vinculos {
		v := &vinculos[i]
		if !v.contaParaTurno(turno) {
			continue
		}
		a := garantir(v.DisciplinaID, v.DisciplinaNome)
		a.oferta += v.Aulas
		a.professores[v.ProfessorID] = struct{}{}
	}

	linhas := make([]dto.LinhaDiagnostico, 0, len(porDisciplina))
	for id, a := range porDisciplina {
		saldo := a.oferta - a.demanda
		status := dto.StatusOK
		switch {
		case saldo < 0:
			status = dto.StatusDeficit
		case saldo > 0:
			status = dto.StatusSurplus
		}
		linhas = append(linhas, dto.LinhaDiagnostico{
			DisciplinaID:      id,
			DisciplinaNome:    a.nome,
			Demanda:           a.demanda,
			Oferta:            a.oferta,
			ProfessoresAtivos: len(a.professores),
			Saldo:             saldo,
			Status:            status,
		})
	}
	sort.Slice(linhas, func(i, j int) bool {
		ni, nj := strings.ToLower(linhas[i].DisciplinaNome), strings.ToLower(linhas[j].DisciplinaNome)
		if ni != nj {
			return ni < nj
		}
		return linhas[i].DisciplinaID.String() < linhas[j].DisciplinaID.String()
	})

	turmas := make([]dto.DemandaTurma, 0, len(porTurma))
	for _, t := range porTurma {
		turmas = append(turmas, *t)
	}
	sort.Slice(turmas, func(i, j int) bool {
		ni, nj := strings.ToLower(turmas[i].TurmaNome), strings.ToLower(turmas[j].TurmaNome)
		if ni != nj {
			return ni < nj
		}
		return turmas[i].TurmaID.String() < turmas[j].TurmaID.String()
	})

	return dto.DiagnosticoResponse{Turno: turno, Disciplinas: linhas, Turmas: turmas}
}

/* =======================================================
   CARGA DOS FATOS
======================================================= */

// Diagnosticar carrega cargas e vínculos da escola e delega o cálculo.
func (s *DiagnosticoService) Diagnosticar(ctx context.Context, escolaID uuid.UUID, turno string) (dto.DiagnosticoResponse, error) {
	db := s.DB.WithContext(ctx)

	var cargas []CargaRow
	if err := db.Raw(`
		SELECT ch.carga_horaria_turma_id      AS turma_id,
		       t.turma_nome                   AS turma_nome,
		       ch.carga_horaria_disciplina_id AS disciplina_id,
		       d.disciplina_nome              AS disciplina_nome,
		       ch.carga_horaria_aulas         AS aulas
		FROM cargas_horarias ch
		JOIN turmas t
		  ON t.turma_id = ch.carga_horaria_turma_id
		 AND t.turma_deleted_at IS NULL
		 AND t.turma_ativa = TRUE
		JOIN disciplinas d
		  ON d.disciplina_id = ch.carga_horaria_disciplina_id
		 AND d.disciplina_deleted_at IS NULL
		WHERE ch.carga_horaria_escola_id = ?
		  AND t.turma_turno = ?`,
		escolaID, turno,
	).Scan(&cargas).Error; err != nil {
		return dto.DiagnosticoResponse{}, err
	}

	var vinculos []VinculoRow
	if err := db.Raw(`
		SELECT m.modulacao_professor_id  AS professor_id,
		       m.modulacao_disciplina_id AS disciplina_id,
		       d.disciplina_nome         AS disciplina_nome,
		       m.modulacao_turma_id      AS turma_id,
		       m.modulacao_aulas         AS aulas,
		       t.turma_turno             AS turma_turno,
		       p.professor_turnos        AS professor_turnos
		FROM modulacoes m
		JOIN professores p
		  ON p.professor_id = m.modulacao_professor_id
		 AND p.professor_deleted_at IS NULL
		 AND p.professor_ativo = TRUE
		JOIN disciplinas d
		  ON d.disciplina_id = m.modulacao_disciplina_id
		 AND d.disciplina_deleted_at IS NULL
		LEFT JOIN turmas t
		  ON t.turma_id = m.modulacao_turma_id
		 AND t.turma_deleted_at IS NULL
		WHERE m.modulacao_escola_id = ?`,
		escolaID,
	).Scan(&vinculos).Error; err != nil {
		return dto.DiagnosticoResponse{}, err
	}

	return CalcularDiagnostico(turno, cargas, vinculos), nil
}
