package constants

// Turnos de funcionamento da escola
const (
	TurnoMatutino   = "matutino"
	TurnoVespertino = "vespertino"
	TurnoNoturno    = "noturno"
)

var Turnos = []string{TurnoMatutino, TurnoVespertino, TurnoNoturno}

func TurnoValido(turno string) bool {
	for _, t := range Turnos {
		if t == turno {
			return true
		}
	}
	return false
}

// Dias letivos: 1=segunda ... 6=sábado
const (
	DiaSemanaMin = 1
	DiaSemanaMax = 6
)

func DiaSemanaValido(dia int) bool {
	return dia >= DiaSemanaMin && dia <= DiaSemanaMax
}

// Status de disponibilidade do professor numa célula da grade
const (
	DisponibilidadeLivre        = "livre"
	DisponibilidadeIndisponivel = "indisponivel"
	DisponibilidadeEvitar       = "evitar"
)

// NormalizarStatusDisponibilidade reduz qualquer valor desconhecido para "livre".
func NormalizarStatusDisponibilidade(status string) string {
	switch status {
	case DisponibilidadeLivre, DisponibilidadeIndisponivel, DisponibilidadeEvitar:
		return status
	default:
		return DisponibilidadeLivre
	}
}

// Status do resultado de grade
const (
	GradeStatusDraft     = "DRAFT"
	GradeStatusPublished = "PUBLISHED"
)

// Origem de um slot da grade
const (
	SlotOrigemManual     = "manual"
	SlotOrigemImportacao = "importacao"
	SlotOrigemPublicacao = "publicacao"
)
