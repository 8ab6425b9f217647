package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validCreate() CreateUserData {
	return CreateUserData{
		DisplayName: "Ana Martinez",
		LoginName:   "amartinez",
		Email:       "ana@empresa.com",
		Password:    "usuario123",
		CompanyID:   2,
		Role:        RoleStandardUser,
	}
}

func TestUser_JSONUsesWireNames(t *testing.T) {
	u := User{ID: 7, DisplayName: "N", LoginName: "l", Email: "e@x.io", CompanyID: 3, Active: true, Role: RoleSuperUser,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"id", "nombre", "login", "email", "idEmpresa", "activo", "rol", "creacion", "modificacion"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "pwd")
	assert.EqualValues(t, 1, m["rol"])
}

func TestUser_IdentityDropsDigest(t *testing.T) {
	u := User{ID: 1, DisplayName: "Admin", LoginName: "admin", Email: "a@b.co", PasswordDigest: "x", CompanyID: 1, Role: RoleSuperUser}
	id := u.Identity()

	require.Equal(t, &Identity{ID: 1, DisplayName: "Admin", LoginName: "admin", Email: "a@b.co", Role: RoleSuperUser, CompanyID: 1}, id)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleSuperUser.Valid())
	assert.True(t, RoleStandardUser.Valid())
	assert.False(t, Role(3).Valid())
	assert.Equal(t, "SuperUser", RoleSuperUser.String())
	assert.Equal(t, "Role(9)", Role(9).String())
}

func TestUpdateUserData_ApplyOnlySuppliedFields(t *testing.T) {
	u := User{DisplayName: "Old", LoginName: "old", Email: "old@x.io", CompanyID: 1, Role: RoleStandardUser, Active: true}

	UpdateUserData{DisplayName: ptr("New"), Active: ptr(false)}.Apply(&u)

	assert.Equal(t, "New", u.DisplayName)
	assert.False(t, u.Active)
	assert.Equal(t, "old", u.LoginName)
	assert.Equal(t, "old@x.io", u.Email)
	assert.Equal(t, RoleStandardUser, u.Role)
}

func TestUpdateUserData_EmptyMarshalsToEmptyObject(t *testing.T) {
	b, err := json.Marshal(UpdateUserData{})
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(b))
}

func TestCreateUserData_Validate(t *testing.T) {
	require.NoError(t, validCreate().Validate())

	tests := []struct {
		name   string
		mutate func(*CreateUserData)
		want   string
	}{
		{"empty name", func(d *CreateUserData) { d.DisplayName = "  " }, "name is required"},
		{"short name", func(d *CreateUserData) { d.DisplayName = "A" }, "name must be at least 2 characters"},
		{"short login", func(d *CreateUserData) { d.LoginName = "ab" }, "login must be at least 3 characters"},
		{"bad login", func(d *CreateUserData) { d.LoginName = "ana-m" }, "login may only contain letters, digits and underscores"},
		{"bad email", func(d *CreateUserData) { d.Email = "ana@empresa" }, "email is not valid"},
		{"short password", func(d *CreateUserData) { d.Password = "12345" }, "password must be at least 6 characters"},
		{"no password", func(d *CreateUserData) { d.Password = "" }, "password is required"},
		{"company", func(d *CreateUserData) { d.CompanyID = 0 }, "company id must be positive"},
		{"role", func(d *CreateUserData) { d.Role = 5 }, "role must be 1 (super user) or 2 (standard user)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validCreate()
			tt.mutate(&d)

			err := d.Validate()
			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			require.Equal(t, []string{tt.want}, ve.Messages)
		})
	}
}

func TestCreateUserData_ValidateReportsAll(t *testing.T) {
	err := CreateUserData{}.Validate()

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Messages, 6)
}

func TestUpdateUserData_Validate(t *testing.T) {
	require.NoError(t, UpdateUserData{}.Validate())
	require.NoError(t, UpdateUserData{Email: ptr("new@empresa.com")}.Validate())

	err := UpdateUserData{Password: ptr("123")}.Validate()
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, []string{"password must be at least 6 characters"}, ve.Messages)
}

func TestListFilter_Normalized(t *testing.T) {
	f := ListFilter{}.Normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, "creacion", f.SortBy)
	assert.Equal(t, SortDesc, f.SortOrder)

	f = ListFilter{SortOrder: "asc", Page: 3, Limit: 5}.Normalized()
	assert.Equal(t, SortAsc, f.SortOrder)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 5, f.Limit)
}

func TestListFilter_RoleAndActive(t *testing.T) {
	r, ok := ListFilter{Role: "1"}.RoleFilter()
	assert.True(t, ok)
	assert.Equal(t, RoleSuperUser, r)

	_, ok = ListFilter{Role: "3"}.RoleFilter()
	assert.False(t, ok)

	a, ok := ListFilter{Active: "false"}.ActiveFilter()
	assert.True(t, ok)
	assert.False(t, a)

	_, ok = ListFilter{Active: "yes"}.ActiveFilter()
	assert.False(t, ok)
}

func TestListFilter_Query(t *testing.T) {
	q := ListFilter{Search: "ana", Active: "true", SortBy: "nombre", SortOrder: "ASC", Page: 2, Limit: 5}.Query()

	assert.Equal(t, "activo=true&limit=5&page=2&search=ana&sortBy=nombre&sortOrder=ASC", q.Encode())
	assert.Empty(t, ListFilter{}.Query().Encode())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 10, 0)
	assert.Equal(t, Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 10}, p)

	p = NewPagination(2, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	p = NewPagination(3, 2, 5)
	assert.False(t, p.HasNextPage)

	p = NewPagination(1, math.MaxInt, 4)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
}
