package models

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/common"
)

var (
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	minDisplayNameLen = 2
	minLoginLen       = 3
	minPasswordLen    = 6
)

// Validate checks every field of a new record and reports all problems at once.
func (d CreateUserData) Validate() error {
	var msgs []string
	msgs = appendDisplayName(msgs, d.DisplayName)
	msgs = appendLogin(msgs, d.LoginName)
	msgs = appendEmail(msgs, d.Email)
	msgs = appendPassword(msgs, d.Password)
	msgs = appendCompany(msgs, d.CompanyID)
	msgs = appendRole(msgs, d.Role)
	if len(msgs) > 0 {
		return common.NewValidationError(msgs...)
	}
	return nil
}

// Validate checks only the fields that are present.
func (d UpdateUserData) Validate() error {
	var msgs []string
	if d.DisplayName != nil {
		msgs = appendDisplayName(msgs, *d.DisplayName)
	}
	if d.LoginName != nil {
		msgs = appendLogin(msgs, *d.LoginName)
	}
	if d.Email != nil {
		msgs = appendEmail(msgs, *d.Email)
	}
	if d.Password != nil {
		msgs = appendPassword(msgs, *d.Password)
	}
	if d.CompanyID != nil {
		msgs = appendCompany(msgs, *d.CompanyID)
	}
	if d.Role != nil {
		msgs = appendRole(msgs, *d.Role)
	}
	if len(msgs) > 0 {
		return common.NewValidationError(msgs...)
	}
	return nil
}

func appendDisplayName(msgs []string, v string) []string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return append(msgs, "name is required")
	case len([]rune(v)) < minDisplayNameLen:
		return append(msgs, "name must be at least 2 characters")
	}
	return msgs
}

func appendLogin(msgs []string, v string) []string {
	switch {
	case strings.TrimSpace(v) == "":
		return append(msgs, "login is required")
	case len(v) < minLoginLen:
		return append(msgs, "login must be at least 3 characters")
	case !loginPattern.MatchString(v):
		return append(msgs, "login may only contain letters, digits and underscores")
	}
	return msgs
}

func appendEmail(msgs []string, v string) []string {
	switch {
	case strings.TrimSpace(v) == "":
		return append(msgs, "email is required")
	case !emailPattern.MatchString(v):
		return append(msgs, "email is not valid")
	}
	return msgs
}

func appendPassword(msgs []string, v string) []string {
	switch {
	case v == "":
		return append(msgs, "password is required")
	case len(v) < minPasswordLen:
		return append(msgs, "password must be at least 6 characters")
	}
	return msgs
}

func appendCompany(msgs []string, v int64) []string {
	if v < 1 {
		return append(msgs, "company id must be positive")
	}
	return msgs
}

func appendRole(msgs []string, r Role) []string {
	if !r.Valid() {
		return append(msgs, "role must be 1 (super user) or 2 (standard user)")
	}
	return msgs
}
