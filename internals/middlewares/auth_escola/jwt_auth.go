package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "minhaescola_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // true = token revogado
	AllowCookieFallback bool                                // usa cookie access_token se não houver Bearer
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret é obrigatório")
	}

	return func(c *fiber.Ctx) error {
		// 1) Token: Authorization: Bearer xxx (ou cookie, se permitido)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Blacklist (opcional)
		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(raw); err == nil && black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revogado")
			}
		}

		// 3) Parse + verificação do algoritmo
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Método de assinatura inválido")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Claims do token inválidos")
		}

		// Claims crus (opcional, para debugging/guards ad hoc)
		c.Locals("jwt_claims", claims)

		// === HIDRATA OS LOCALS QUE OS HELPERS ESPERAM ===

		if v, ok := claims["roles_global"]; ok {
			c.Locals(helperAuth.LocRolesGlobal, v)
		}

		if v, ok := claims["escola_roles"]; ok {
			c.Locals(helperAuth.LocEscolaRoles, v)
		}

		if v, ok := claims["is_owner"]; ok {
			switch t := v.(type) {
			case bool:
				c.Locals(helperAuth.LocIsOwner, t)
			case string:
				s := strings.ToLower(strings.TrimSpace(t))
				if s == "true" || s == "1" || s == "yes" {
					c.Locals(helperAuth.LocIsOwner, true)
				}
			}
		}

		// escola_id (sessão única) → LocActiveEscolaID
		if sid := strClaim(claims, "escola_id"); sid != "" {
			c.Locals(helperAuth.LocActiveEscolaID, sid)
		} else if sid := strClaim(claims, "active_escola_id"); sid != "" {
			c.Locals(helperAuth.LocActiveEscolaID, sid)
		}

		// user_id: id/sub/user_id nesta ordem de preferência
		switch {
		case strClaim(claims, "id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "user_id"))
		}

		// === Monta roles_claim estruturado para uso posterior ===
		rc := helperAuth.RolesClaim{
			RolesGlobal: readStringSlice(claims["roles_global"]),
			EscolaRoles: make([]helperAuth.EscolaRolesEntry, 0),
		}
		if v, ok := claims["escola_roles"]; ok {
			switch arr := v.(type) {
			case []any:
				for _, it := range arr {
					m, ok := it.(map[string]any)
					if !ok {
						continue
					}
					var eid uuid.UUID
					if s, ok := m["escola_id"].(string); ok {
						if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
							eid = id
						}
					}
					roles := readStringSlice(m["roles"])
					rc.EscolaRoles = append(rc.EscolaRoles, helperAuth.EscolaRolesEntry{
						EscolaID: eid,
						Roles:    roles,
					})
				}
			}
		}
		c.Locals("roles_claim", rc)

		// Deriva o "role" legado para guards antigos
		EnsureLegacyRoleLocal(c)

		return c.Next()
	}
}

// util: lê claim string
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// util: interface{} → []string (aceita []string ou []any)
func readStringSlice(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// EnsureLegacyRoleLocal preenche c.Locals("role") a partir dos claims modernos.
// Prioridade: escola_roles (admin > professor > user), depois roles_global,
// por fim fallback "user".
func EnsureLegacyRoleLocal(c *fiber.Ctx) {
	if v := c.Locals("role"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return
		}
	}

	pick := func(list []string, wanted ...string) string {
		if len(list) == 0 {
			return ""
		}
		has := map[string]struct{}{}
		for _, r := range list {
			r = strings.ToLower(strings.TrimSpace(r))
			if r != "" {
				has[r] = struct{}{}
			}
		}
		for _, w := range wanted {
			if _, ok := has[w]; ok {
				return w
			}
		}
		return ""
	}

	// 1) escola_roles
	if mr := c.Locals(helperAuth.LocEscolaRoles); mr != nil {
		switch t := mr.(type) {
		case []helperAuth.EscolaRolesEntry:
			for _, e := range t {
				if r := pick(e.Roles, "admin", "professor", "user"); r != "" {
					c.Locals("role", r)
					return
				}
			}
		case []map[string]any:
			for _, m := range t {
				roles := readStringSlice(m["roles"])
				if r := pick(roles, "admin", "professor", "user"); r != "" {
					c.Locals("role", r)
					return
				}
			}
		case []any:
			for _, it := range t {
				if m, ok := it.(map[string]any); ok {
					roles := readStringSlice(m["roles"])
					if r := pick(roles, "admin", "professor", "user"); r != "" {
						c.Locals("role", r)
						return
					}
				}
			}
		}
	}

	// 2) roles_global
	if rg := c.Locals(helperAuth.LocRolesGlobal); rg != nil {
		roles := readStringSlice(rg)
		if r := pick(roles, "owner", "admin", "professor", "user"); r != "" {
			c.Locals("role", r)
			return
		}
	}

	// 3) fallback
	c.Locals("role", "user")
}
