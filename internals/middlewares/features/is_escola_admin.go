package middleware

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"minhaescola_backend/internals/constants"
	helper "minhaescola_backend/internals/helpers/auth"
)

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

func trimLower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

/* ==========================
   escola_roles a partir dos locals
========================== */

type EscolaRole struct {
	EscolaID string   `json:"escola_id"`
	Roles    []string `json:"roles"`
}

// Lê escola_roles já hidratado pelo middleware de auth.
func getEscolaRoles(c *fiber.Ctx) []EscolaRole {
	v := c.Locals(helper.LocEscolaRoles)
	if v == nil {
		return nil
	}
	if xs, ok := v.([]EscolaRole); ok {
		return xs
	}
	if entries, ok := v.([]helper.EscolaRolesEntry); ok {
		out := make([]EscolaRole, 0, len(entries))
		for _, e := range entries {
			out = append(out, EscolaRole{EscolaID: e.EscolaID.String(), Roles: e.Roles})
		}
		return out
	}
	if arr, ok := v.([]interface{}); ok {
		out := make([]EscolaRole, 0, len(arr))
		for _, it := range arr {
			if m, ok := it.(map[string]interface{}); ok {
				eid, _ := m["escola_id"].(string)
				var roles []string
				switch rr := m["roles"].(type) {
				case []interface{}:
					for _, r := range rr {
						if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
							roles = append(roles, trimLower(s))
						}
					}
				case []string:
					for _, s := range rr {
						if strings.TrimSpace(s) != "" {
							roles = append(roles, trimLower(s))
						}
					}
				}
				if strings.TrimSpace(eid) != "" {
					out = append(out, EscolaRole{EscolaID: eid, Roles: roles})
				}
			}
		}
		return out
	}
	return nil
}

/* ==========================
   Prioridade de roles (auto-pick)
========================== */

var rolePriority = map[string]int{
	constants.RoleOwner:     100,
	constants.RoleAdmin:     90,
	constants.RoleProfessor: 70,
	constants.RoleUser:      10,
}

func bestRoleFor(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	cands := make([]string, 0, len(roles))
	for _, r := range roles {
		r = trimLower(r)
		if r != "" {
			cands = append(cands, r)
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.Slice(cands, func(i, j int) bool { return rolePriority[cands[i]] > rolePriority[cands[j]] })
	return cands[0]
}

func roleInEscola(c *fiber.Ctx, escolaID, role string) bool {
	eid := strings.TrimSpace(escolaID)
	r := trimLower(role)
	if eid == "" || r == "" {
		return false
	}
	for _, er := range getEscolaRoles(c) {
		if strings.EqualFold(er.EscolaID, eid) {
			for _, rr := range er.Roles {
				if strings.EqualFold(rr, r) {
					return true
				}
			}
		}
	}
	return false
}

/* ==========================
   ESCOPO ESTRITO — escola sempre do token
========================== */

// UseEscolaScope:
//   - O tenant vem SEMPRE do token (active_escola_id); o cliente nunca escolhe a
//     escola por parâmetro.
//   - Owner pode selecionar a escola via header X-Escola-ID (não tem vínculo).
//   - Role ativa: a melhor role do usuário naquela escola.
//   - Locals definidos: active_escola_id, active_role.
func UseEscolaScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🎯 [MIDDLEWARE] UseEscolaScope | Path:", c.Path(), "| Method:", c.Method())

		isOwner := helper.IsOwner(c)

		reqEscola := ""
		if id, err := helper.GetActiveEscolaIDFromToken(c); err == nil && id != uuid.Nil {
			reqEscola = id.String()
		}

		// Owner sem escola ativa: aceita header explícito
		if reqEscola == "" && isOwner {
			if v := strings.TrimSpace(c.Get("X-Escola-ID")); v != "" {
				if _, err := uuid.Parse(v); err == nil {
					reqEscola = v
				}
			}
		}

		if reqEscola == "" {
			return fiber.NewError(fiber.StatusForbidden, "Escopo de escola ausente no token")
		}

		if isOwner {
			c.Locals("active_escola_id", reqEscola)
			c.Locals("active_role", constants.RoleOwner)
			log.Println("    🔧 escopo owner | escola_id:", reqEscola)
			return c.Next()
		}

		var rolesNaEscola []string
		for _, er := range getEscolaRoles(c) {
			if strings.EqualFold(er.EscolaID, reqEscola) {
				rolesNaEscola = er.Roles
				break
			}
		}
		if len(rolesNaEscola) == 0 {
			return fiber.NewError(fiber.StatusForbidden, "Usuário não é membro da escola do token")
		}

		activeRole := bestRoleFor(rolesNaEscola)
		if activeRole == "" {
			return fiber.NewError(fiber.StatusForbidden, "Usuário sem papel nesta escola")
		}

		c.Locals("active_escola_id", reqEscola)
		c.Locals("active_role", activeRole)

		log.Println("    🔧 escopo definido | escola_id:", reqEscola, "| role:", activeRole)
		return c.Next()
	}
}

/* ==========================
   GUARDS ESTRITOS
========================== */

// IsEscolaAdmin:
//   - Permite apenas owner/admin (professor NÃO passa).
//   - Verifica que a role realmente existe na escola do escopo.
func IsEscolaAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🔐 [MIDDLEWARE] IsEscolaAdmin | Path:", c.Path(), "| Method:", c.Method())

		eid := strings.TrimSpace(asString(c.Locals("active_escola_id")))
		role := trimLower(asString(c.Locals("active_role")))

		if eid == "" || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Escopo escola/role não definido")
		}

		if helper.IsOwner(c) {
			return c.Next()
		}

		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin("gestão de horários"))
		}

		if !roleInEscola(c, eid, role) {
			return fiber.NewError(fiber.StatusForbidden, "Role não registrada nesta escola")
		}

		log.Println("    ✅ acesso permitido | role:", role, "| escola_id:", eid)
		return c.Next()
	}
}

// IsEscolaStaff: admin/professor (e owner).
func IsEscolaStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Println("🔐 [MIDDLEWARE] IsEscolaStaff | Path:", c.Path(), "| Method:", c.Method())

		eid := strings.TrimSpace(asString(c.Locals("active_escola_id")))
		role := trimLower(asString(c.Locals("active_role")))
		if eid == "" || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Escopo escola/role não definido")
		}
		if helper.IsOwner(c) {
			return c.Next()
		}
		switch role {
		case constants.RoleAdmin, constants.RoleProfessor:
			// ok
		default:
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorProfessor("consulta de horários"))
		}
		if !roleInEscola(c, eid, role) {
			return fiber.NewError(fiber.StatusForbidden, "Role não registrada nesta escola")
		}
		return c.Next()
	}
}

/* ==========================
   Owner-only
========================== */

func IsOwnerGlobal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, ok := c.Locals("roles_claim").(helper.RolesClaim)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Roles claim não encontrado")
		}
		for _, r := range rc.RolesGlobal {
			if strings.EqualFold(r, "owner") {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "Acesso exclusivo do owner")
	}
}
