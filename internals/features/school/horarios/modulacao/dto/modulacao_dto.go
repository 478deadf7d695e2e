// file: internals/features/school/horarios/modulacao/dto/modulacao_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "minhaescola_backend/internals/features/school/horarios/modulacao/model"
)

// Teto de aulas semanais aceito por vínculo; acima disso o valor é truncado.
const MaxAulasPorVinculo = 99

/* =========================================================
   1) REQUESTS
   ========================================================= */

// ItemModulacaoRequest chega "cru" (ids como string) porque o lote costuma vir
// de planilha/importação; a sanitização decide o que entra.
type ItemModulacaoRequest struct {
	ProfessorID  string  `json:"professor_id"`
	DisciplinaID string  `json:"disciplina_id"`
	TurmaID      *string `json:"turma_id"` // null/vazio = vínculo para a escola inteira
	Aulas        int     `json:"aulas"`
}

type BulkUpsertModulacaoRequest struct {
	Itens []ItemModulacaoRequest `json:"itens" validate:"required,min=1,max=5000"`
}

// LinhaRejeitada identifica, pelo índice no lote, uma linha que não entrou e o motivo.
type LinhaRejeitada struct {
	Indice int    `json:"indice"`
	Motivo string `json:"motivo"`
}

// RelatorioUpsert é a resposta do upsert em lote: nada é descartado em silêncio.
type RelatorioUpsert struct {
	Processados int              `json:"processados"`
	Aceitos     int              `json:"aceitos"`
	Duplicados  int              `json:"duplicados"`
	Rejeitados  []LinhaRejeitada `json:"rejeitados"`
}

type chaveModulacao struct {
	Professor  uuid.UUID
	Disciplina uuid.UUID
	Turma      uuid.UUID
}

// ReferenciasValidas são os ids cadastrados da escola, para barrar linha que
// aponta para registro de outra escola (ou inexistente). Nil pula a checagem.
type ReferenciasValidas struct {
	Professores map[uuid.UUID]struct{}
	Disciplinas map[uuid.UUID]struct{}
	Turmas      map[uuid.UUID]struct{}
}

// SanitizarEDeduplicar valida cada linha e deduplica pela chave
// (professor, disciplina, turma) mantendo a ÚLTIMA ocorrência.
//
// Linhas com ids inválidos ou desconhecidos são rejeitadas com motivo; aulas
// negativas viram 0 e valores acima de MaxAulasPorVinculo são truncados.
func (r *BulkUpsertModulacaoRequest) SanitizarEDeduplicar(escolaID uuid.UUID, ref *ReferenciasValidas) ([]m.ModulacaoModel, RelatorioUpsert) {
	rel := RelatorioUpsert{
		Processados: len(r.Itens),
		Rejeitados:  []LinhaRejeitada{},
	}

	posPorChave := make(map[chaveModulacao]int, len(r.Itens))
	aceitos := make([]m.ModulacaoModel, 0, len(r.Itens))

	for i, item := range r.Itens {
		profID, err := uuid.Parse(strings.TrimSpace(item.ProfessorID))
		if err != nil || profID == uuid.Nil {
			rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "professor_id inválido"})
			continue
		}
		discID, err := uuid.Parse(strings.TrimSpace(item.DisciplinaID))
		if err != nil || discID == uuid.Nil {
			rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "disciplina_id inválido"})
			continue
		}

		turmaID := uuid.Nil // sentinela: vínculo geral
		if item.TurmaID != nil && strings.TrimSpace(*item.TurmaID) != "" {
			tid, err := uuid.Parse(strings.TrimSpace(*item.TurmaID))
			if err != nil || tid == uuid.Nil {
				rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "turma_id inválido"})
				continue
			}
			turmaID = tid
		}

		if ref != nil {
			if _, ok := ref.Professores[profID]; !ok {
				rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "professor não cadastrado nesta escola"})
				continue
			}
			if _, ok := ref.Disciplinas[discID]; !ok {
				rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "disciplina não cadastrada nesta escola"})
				continue
			}
			if turmaID != uuid.Nil {
				if _, ok := ref.Turmas[turmaID]; !ok {
					rel.Rejeitados = append(rel.Rejeitados, LinhaRejeitada{Indice: i, Motivo: "turma não cadastrada nesta escola"})
					continue
				}
			}
		}

		aulas := item.Aulas
		if aulas < 0 {
			aulas = 0
		}
		if aulas > MaxAulasPorVinculo {
			aulas = MaxAulasPorVinculo
		}

		mod := m.ModulacaoModel{
			ModulacaoEscolaID:     escolaID,
			ModulacaoProfessorID:  profID,
			ModulacaoDisciplinaID: discID,
			ModulacaoTurmaID:      turmaID,
			ModulacaoAulas:        aulas,
		}

		chave := chaveModulacao{Professor: profID, Disciplina: discID, Turma: turmaID}
		if pos, ok := posPorChave[chave]; ok {
			// chave repetida no lote: a última ocorrência vence
			aceitos[pos] = mod
			rel.Duplicados++
			continue
		}
		posPorChave[chave] = len(aceitos)
		aceitos = append(aceitos, mod)
	}

	rel.Aceitos = len(aceitos)
	return aceitos, rel
}

// Remoção em lote

type ChaveModulacaoRequest struct {
	ProfessorID  uuid.UUID  `json:"professor_id"  validate:"required"`
	DisciplinaID uuid.UUID  `json:"disciplina_id" validate:"required"`
	TurmaID      *uuid.UUID `json:"turma_id"` // null = vínculo geral
}

type RemoverModulacaoRequest struct {
	Turno *string                 `json:"turno" validate:"omitempty,oneof=matutino vespertino noturno"`
	Itens []ChaveModulacaoRequest `json:"itens" validate:"required,min=1,max=1000,dive"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ModulacaoResponse struct {
	ModulacaoID    uuid.UUID  `json:"modulacao_id"`
	ProfessorID    uuid.UUID  `json:"professor_id"`
	ProfessorNome  string     `json:"professor_nome,omitempty"`
	DisciplinaID   uuid.UUID  `json:"disciplina_id"`
	DisciplinaNome string     `json:"disciplina_nome,omitempty"`
	TurmaID        *uuid.UUID `json:"turma_id"` // null = vínculo geral
	Aulas          int        `json:"aulas"`
}

type TurmaResumo struct {
	TurmaID uuid.UUID `json:"turma_id"`
	Nome    string    `json:"nome"`
	Serie   string    `json:"serie,omitempty"`
	Turno   string    `json:"turno"`
}

// ListModulacaoResponse junta as turmas do turno e os vínculos (específicos e
// gerais) já com nomes resolvidos.
type ListModulacaoResponse struct {
	Turmas     []TurmaResumo       `json:"turmas"`
	Modulacoes []ModulacaoResponse `json:"modulacoes"`
}
