package users

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

type compareFunc func(a, b models.User) int

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// comparators maps sort keys, wire names and English aliases, to
// ascending comparators. Strings compare byte-wise.
var comparators = map[string]compareFunc{
	"id":           func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) },
	"nombre":       func(a, b models.User) int { return strings.Compare(a.DisplayName, b.DisplayName) },
	"login":        func(a, b models.User) int { return strings.Compare(a.LoginName, b.LoginName) },
	"email":        func(a, b models.User) int { return strings.Compare(a.Email, b.Email) },
	"idEmpresa":    func(a, b models.User) int { return cmp.Compare(a.CompanyID, b.CompanyID) },
	"activo":       func(a, b models.User) int { return boolCmp(a.Active, b.Active) },
	"rol":          func(a, b models.User) int { return cmp.Compare(a.Role, b.Role) },
	"creacion":     func(a, b models.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"modificacion": func(a, b models.User) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

var aliases = map[string]string{
	"displayName": "nombre",
	"loginName":   "login",
	"companyId":   "idEmpresa",
	"active":      "activo",
	"role":        "rol",
	"createdAt":   "creacion",
	"updatedAt":   "modificacion",
}

func comparatorFor(key string) compareFunc {
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if c, ok := comparators[key]; ok {
		return c
	}
	return comparators["creacion"]
}

// sortUsers orders users in place. Equal keys keep their stored order.
func sortUsers(users []models.User, key, order string) {
	c := comparatorFor(key)
	if order == models.SortAsc {
		slices.SortStableFunc(users, c)
		return
	}
	slices.SortStableFunc(users, func(a, b models.User) int { return c(b, a) })
}
