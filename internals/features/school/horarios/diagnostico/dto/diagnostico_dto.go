// internals/features/school/horarios/diagnostico/dto/diagnostico_dto.go
package dto

import "github.com/google/uuid"

/* =========================================================
   RESPONSES (leitura pura, sem requests de escrita)
   ========================================================= */

// Status de capacidade por disciplina (contrato com o front — não traduzir).
const (
	StatusOK      = "OK"
	StatusSurplus = "SURPLUS"
	StatusDeficit = "DEFICIT"
)

// LinhaDiagnostico compara, para uma disciplina, as aulas que as turmas do
// turno pedem (demanda) com as aulas que a modulação dos professores cobre
// (oferta).
type LinhaDiagnostico struct {
	DisciplinaID      uuid.UUID `json:"disciplina_id"`
	DisciplinaNome    string    `json:"disciplina_nome"`
	Demanda           int       `json:"demanda"`
	Oferta            int       `json:"oferta"`
	ProfessoresAtivos int       `json:"professores_ativos"`
	Saldo             int       `json:"saldo"`
	Status            string    `json:"status"`
}

// DemandaTurma é o detalhamento por turma: quantas aulas semanais a turma
// soma nas cargas horárias definidas.
type DemandaTurma struct {
	TurmaID    uuid.UUID `json:"turma_id"`
	TurmaNome  string    `json:"turma_nome"`
	TotalAulas int       `json:"total_aulas"`
}

type DiagnosticoResponse struct {
	Turno       string             `json:"turno"`
	Disciplinas []LinhaDiagnostico `json:"disciplinas"`
	Turmas      []DemandaTurma     `json:"turmas"`
}
