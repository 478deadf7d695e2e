// file: internals/helpers/auth/get_escola_id_from_token.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Chaves de Locals (preenchidas pelo middleware verificado)
   ============================================ */

const (
	LocUserID = "user_id" // string | uuid

	LocRolesGlobal    = "roles_global"     // []string
	LocEscolaRoles    = "escola_roles"     // []EscolaRolesEntry | []map[string]any
	LocIsOwner        = "is_owner"         // bool | "true"/"false"
	LocActiveEscolaID = "active_escola_id" // string UUID
)

/* ============================================
   Tipos dos claims estruturados
   ============================================ */

type EscolaRolesEntry struct {
	EscolaID uuid.UUID `json:"escola_id"`
	Roles    []string  `json:"roles"`
}

type RolesClaim struct {
	RolesGlobal []string           `json:"roles_global"`
	EscolaRoles []EscolaRolesEntry `json:"escola_roles"`
}

/* ============================================
   Helpers internos
   ============================================ */

func normalizeLocalsToStrings(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, it := range t {
			switch vv := it.(type) {
			case string:
				if s := strings.TrimSpace(vv); s != "" {
					out = append(out, s)
				}
			case uuid.UUID:
				if vv != uuid.Nil {
					out = append(out, vv.String())
				}
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case uuid.UUID:
		if t != uuid.Nil {
			out = append(out, t.String())
		}
	case []uuid.UUID:
		for _, id := range t {
			if id != uuid.Nil {
				out = append(out, id.String())
			}
		}
	}
	return out
}

func parseFirstUUIDFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" não encontrado no token")
	}
	items := normalizeLocalsToStrings(v)
	if len(items) == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" vazio no token")
	}
	id, err := uuid.Parse(items[0])
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Formato de "+key+" inválido no token")
	}
	return id, nil
}

/* ============================================
   roles_global & escola_roles (ESTRITO: apenas locals)
   ============================================ */

func GetRolesGlobal(c *fiber.Ctx) []string {
	v := c.Locals(LocRolesGlobal) // somente locals verificados
	if v == nil {
		return nil
	}
	return normalizeLocalsToStrings(v)
}

func HasGlobalRole(c *fiber.Ctx, role string) bool {
	for _, r := range GetRolesGlobal(c) {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func parseEscolaRoles(c *fiber.Ctx) ([]EscolaRolesEntry, error) {
	v := c.Locals(LocEscolaRoles)
	if v == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, LocEscolaRoles+" não encontrado no token")
	}
	switch t := v.(type) {
	case []EscolaRolesEntry:
		return t, nil
	case []any:
		out := make([]EscolaRolesEntry, 0, len(t))
		for _, it := range t {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			var entry EscolaRolesEntry
			if s, ok := m["escola_id"].(string); ok {
				if id, err := uuid.Parse(s); err == nil {
					entry.EscolaID = id
				}
			}
			if rs, ok := m["roles"].([]any); ok {
				for _, r := range rs {
					if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
						entry.Roles = append(entry.Roles, s)
					}
				}
			}
			if entry.EscolaID != uuid.Nil {
				out = append(out, entry)
			}
		}
		if len(out) == 0 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, LocEscolaRoles+" vazio/inválido")
		}
		return out, nil
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, LocEscolaRoles+" em formato não suportado")
	}
}

func HasRoleInEscola(c *fiber.Ctx, escolaID uuid.UUID, role string) bool {
	entries, err := parseEscolaRoles(c)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.EscolaID != escolaID {
			continue
		}
		for _, r := range e.Roles {
			if strings.EqualFold(r, role) {
				return true
			}
		}
	}
	return false
}

/* ============================================
   active_escola_id & flags (ESTRITO: locals)
   ============================================ */

func GetActiveEscolaIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := parseFirstUUIDFromLocals(c, LocActiveEscolaID)
	if err != nil {
		// sem escola ativa no token → escopo de tenant ausente
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Escola ativa não encontrada no token")
	}
	return id, nil
}

// GetEscolaIDFromToken é o caminho padrão dos controllers para resolver o tenant.
func GetEscolaIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return GetActiveEscolaIDFromToken(c)
}

func IsOwner(c *fiber.Ctx) bool {
	switch v := c.Locals(LocIsOwner).(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := parseFirstUUIDFromLocals(c, LocUserID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID não encontrado no token")
	}
	return id, nil
}
