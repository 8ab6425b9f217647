// Package seed populates the local directory with demo accounts so the
// panel can be used offline from the first start.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"gopkg.in/yaml.v3"
)

// User is a seed record with a plaintext password.
type User struct {
	ID        int64       `yaml:"id"`
	Name      string      `yaml:"name"`
	Login     string      `yaml:"login"`
	Email     string      `yaml:"email"`
	Password  string      `yaml:"password"`
	CompanyID int64       `yaml:"company_id"`
	Active    bool        `yaml:"active"`
	Role      models.Role `yaml:"role"`
	Created   time.Time   `yaml:"created"`
	Modified  time.Time   `yaml:"modified"`
}

type file struct {
	Users []User `yaml:"users"`
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Defaults are the built-in demo accounts.
func Defaults() []User {
	return []User{
		{ID: 1, Name: "Super Administrador", Login: "admin", Email: "admin@empresa.com", Password: "admin123",
			CompanyID: 1, Active: true, Role: models.RoleSuperUser, Created: day(2024, 1, 1), Modified: day(2024, 1, 1)},
		{ID: 2, Name: "Juan Pérez", Login: "jperez", Email: "juan.perez@empresa.com", Password: "usuario123",
			CompanyID: 1, Active: true, Role: models.RoleStandardUser, Created: day(2024, 1, 15), Modified: day(2024, 1, 15)},
		{ID: 3, Name: "María García", Login: "mgarcia", Email: "maria.garcia@empresa.com", Password: "usuario123",
			CompanyID: 1, Active: true, Role: models.RoleStandardUser, Created: day(2024, 2, 1), Modified: day(2024, 2, 1)},
		{ID: 4, Name: "Carlos López", Login: "clopez", Email: "carlos.lopez@empresa.com", Password: "usuario123",
			CompanyID: 1, Active: false, Role: models.RoleStandardUser, Created: day(2024, 2, 15), Modified: day(2024, 2, 20)},
		{ID: 5, Name: "Ana Martínez", Login: "amartinez", Email: "ana.martinez@empresa.com", Password: "usuario123",
			CompanyID: 2, Active: true, Role: models.RoleStandardUser, Created: day(2024, 3, 1), Modified: day(2024, 3, 1)},
	}
}

// Load reads seed users from a YAML file of the form
//
//	users:
//	  - id: 1
//	    name: Super Administrador
//	    login: admin
//	    email: admin@empresa.com
//	    password: admin123
//	    company_id: 1
//	    active: true
//	    role: 1
//	    created: 2024-01-01
//	    modified: 2024-01-01
//
// An empty path returns Defaults.
func Load(path string) ([]User, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := check(f.Users); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return f.Users, nil
}

// check enforces the directory invariants on a seed list.
func check(users []User) error {
	ids := map[int64]bool{}
	logins := map[string]bool{}
	emails := map[string]bool{}
	for _, u := range users {
		switch {
		case u.ID <= 0:
			return fmt.Errorf("user %q: id must be positive", u.Login)
		case ids[u.ID]:
			return fmt.Errorf("duplicate id %d", u.ID)
		case logins[u.Login]:
			return fmt.Errorf("%w: %s", common.ErrDuplicateLogin, u.Login)
		case emails[u.Email]:
			return fmt.Errorf("%w: %s", common.ErrDuplicateEmail, u.Email)
		case !u.Role.Valid():
			return fmt.Errorf("user %q: invalid role %d", u.Login, u.Role)
		}
		ids[u.ID], logins[u.Login], emails[u.Email] = true, true, true
	}
	return nil
}

// Directory is the part of the local store the seeder writes to.
type Directory interface {
	Exists(ctx context.Context) (bool, error)
	Replace(ctx context.Context, users []models.User) error
	EncodePassword(plaintext string) string
}

// SessionClearer drops the persisted session.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

func records(dir Directory, seeds []User) []models.User {
	out := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		modified := s.Modified
		if modified.Before(s.Created) {
			modified = s.Created
		}
		out = append(out, models.User{
			ID:             s.ID,
			DisplayName:    s.Name,
			LoginName:      s.Login,
			Email:          s.Email,
			PasswordDigest: dir.EncodePassword(s.Password),
			CompanyID:      s.CompanyID,
			Active:         s.Active,
			Role:           s.Role,
			CreatedAt:      s.Created.UTC(),
			UpdatedAt:      modified.UTC(),
		})
	}
	return out
}

// Ensure writes seeds only when no collection has been persisted yet.
// It reports whether it wrote anything.
func Ensure(ctx context.Context, dir Directory, seeds []User) (bool, error) {
	ok, err := dir.Exists(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := dir.Replace(ctx, records(dir, seeds)); err != nil {
		return false, err
	}
	return true, nil
}

// Reset overwrites the collection with seeds and clears the session.
func Reset(ctx context.Context, dir Directory, session SessionClearer, seeds []User) error {
	if err := dir.Replace(ctx, records(dir, seeds)); err != nil {
		return err
	}
	return session.Clear(ctx)
}
