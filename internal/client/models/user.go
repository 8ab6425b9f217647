// Package models defines the directory data model shared by the remote
// client, the local store and the session layer. JSON tags follow the
// remote API wire format, which is also the shape of the persisted
// local collection.
package models

import (
	"fmt"
	"time"
)

// Role classifies a directory account.
type Role int

const (
	RoleSuperUser    Role = 1
	RoleStandardUser Role = 2
)

func (r Role) Valid() bool {
	return r == RoleSuperUser || r == RoleStandardUser
}

func (r Role) String() string {
	switch r {
	case RoleSuperUser:
		return "SuperUser"
	case RoleStandardUser:
		return "StandardUser"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// User is a directory record.
type User struct {
	ID             int64     `json:"id"`
	DisplayName    string    `json:"nombre"`
	LoginName      string    `json:"login"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"pwd,omitempty"`
	CompanyID      int64     `json:"idEmpresa"`
	Active         bool      `json:"activo"`
	Role           Role      `json:"rol"`
	CreatedAt      time.Time `json:"creacion"`
	UpdatedAt      time.Time `json:"modificacion"`
}

// Identity returns the public profile of u, without the password digest.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		LoginName:   u.LoginName,
		Email:       u.Email,
		Role:        u.Role,
		CompanyID:   u.CompanyID,
	}
}

// Identity is the authenticated user's profile.
type Identity struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"nombre"`
	LoginName   string `json:"login"`
	Email       string `json:"email"`
	Role        Role   `json:"rol"`
	CompanyID   int64  `json:"idEmpresa"`
}

// LoginResult is returned by a successful login on either backend.
type LoginResult struct {
	User  *Identity `json:"user"`
	Token string    `json:"token"`
}

// CreateUserData carries the fields of a new record. Password is plaintext
// and is encoded by whichever backend stores it.
type CreateUserData struct {
	DisplayName string `json:"nombre"`
	LoginName   string `json:"login"`
	Email       string `json:"email"`
	Password    string `json:"pwd"`
	CompanyID   int64  `json:"idEmpresa"`
	Role        Role   `json:"rol"`
}

// UpdateUserData is a partial update; nil fields are left unchanged.
type UpdateUserData struct {
	DisplayName *string `json:"nombre,omitempty"`
	LoginName   *string `json:"login,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"pwd,omitempty"`
	CompanyID   *int64  `json:"idEmpresa,omitempty"`
	Role        *Role   `json:"rol,omitempty"`
	Active      *bool   `json:"activo,omitempty"`
}

// Apply merges the supplied fields into u. The password is not touched;
// encoding it is the caller's job.
func (d UpdateUserData) Apply(u *User) {
	if d.DisplayName != nil {
		u.DisplayName = *d.DisplayName
	}
	if d.LoginName != nil {
		u.LoginName = *d.LoginName
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.CompanyID != nil {
		u.CompanyID = *d.CompanyID
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	if d.Active != nil {
		u.Active = *d.Active
	}
}
