package constants

import "fmt"

const (
	RoleUser      = "user"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
	RoleOwner     = "owner"
)

// Templates de mensagem de erro por role
const (
	ErrSomenteProfessores = "❌ Apenas professor, admin ou owner podem acessar %s."
	ErrSomenteAdmins      = "❌ Apenas admin pode acessar %s."
	ErrSomenteOwners      = "❌ Apenas owner pode acessar %s."
)

func RoleErrorProfessor(feature string) string {
	return fmt.Sprintf(ErrSomenteProfessores, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrSomenteAdmins, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrSomenteOwners, feature)
}

// ==========================
// ✅ Grupos de roles
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleProfessor,
		RoleAdmin,
		RoleOwner,
	}

	ProfessorAndAbove = []string{
		RoleProfessor,
		RoleAdmin,
		RoleOwner,
	}

	OwnerAndAbove = []string{
		RoleOwner,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
