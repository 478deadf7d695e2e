// internals/features/school/horarios/disponibilidades/model/disponibilidade_model_test.go
package model

import (
	"testing"

	"gorm.io/datatypes"

	"minhaescola_backend/internals/constants"
)

func diaCom(statusPadrao string, excecoes string) *DisponibilidadeModel {
	d := &DisponibilidadeModel{DisponibilidadeStatusPadrao: statusPadrao}
	if excecoes != "" {
		d.DisponibilidadeExcecoes = datatypes.JSON([]byte(excecoes))
	}
	return d
}

func TestResolverStatus_SemRegistroEhLivre(t *testing.T) {
	if got := ResolverStatus(nil, 1); got != constants.DisponibilidadeLivre {
		t.Fatalf("sem registro deveria ser livre, veio %q", got)
	}
}

func TestResolverStatus_PadraoDoDia(t *testing.T) {
	d := diaCom(constants.DisponibilidadeIndisponivel, "")
	for periodo := 1; periodo <= 6; periodo++ {
		if got := ResolverStatus(d, periodo); got != constants.DisponibilidadeIndisponivel {
			t.Fatalf("período %d: esperava indisponivel, veio %q", periodo, got)
		}
	}
}

func TestResolverStatus_ExcecaoVencePadrao(t *testing.T) {
	d := diaCom(constants.DisponibilidadeLivre,
		`[{"periodo":3,"status":"indisponivel"},{"periodo":5,"status":"evitar"}]`)

	casos := []struct {
		periodo  int
		esperado string
	}{
		{1, constants.DisponibilidadeLivre},
		{3, constants.DisponibilidadeIndisponivel},
		{5, constants.DisponibilidadeEvitar},
	}
	for _, c := range casos {
		if got := ResolverStatus(d, c.periodo); got != c.esperado {
			t.Errorf("período %d: esperava %q, veio %q", c.periodo, c.esperado, got)
		}
	}
}

// Duas exceções para o mesmo período: a última da lista vale.
func TestResolverStatus_UltimaExcecaoVence(t *testing.T) {
	d := diaCom(constants.DisponibilidadeLivre,
		`[{"periodo":2,"status":"indisponivel"},{"periodo":2,"status":"evitar"}]`)
	if got := ResolverStatus(d, 2); got != constants.DisponibilidadeEvitar {
		t.Fatalf("esperava evitar (última exceção), veio %q", got)
	}
}

// Status fora do vocabulário não derruba nada: normaliza para livre.
func TestResolverStatus_StatusDesconhecidoViraLivre(t *testing.T) {
	d := diaCom("ferias", `[{"periodo":4,"status":"sei-la"}]`)
	if got := ResolverStatus(d, 1); got != constants.DisponibilidadeLivre {
		t.Fatalf("padrão desconhecido deveria virar livre, veio %q", got)
	}
	if got := ResolverStatus(d, 4); got != constants.DisponibilidadeLivre {
		t.Fatalf("exceção desconhecida deveria virar livre, veio %q", got)
	}
}

func TestExcecoes_JSONInvalidoViraVazio(t *testing.T) {
	d := diaCom(constants.DisponibilidadeLivre, `{nao é json`)
	if got := d.Excecoes(); got != nil {
		t.Fatalf("JSONB inválido deveria virar lista vazia, veio %v", got)
	}
	if got := ResolverStatus(d, 1); got != constants.DisponibilidadeLivre {
		t.Fatalf("com excecoes inválidas vale o padrão do dia, veio %q", got)
	}
}
