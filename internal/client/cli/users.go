package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// listFilter maps REPL arguments onto a ListFilter.
func listFilter(args []string) (models.ListFilter, error) {
	kv, err := ParseArgs(args)
	if err != nil {
		return models.ListFilter{}, err
	}

	var f models.ListFilter
	for k, v := range kv {
		switch k {
		case "search", "q":
			f.Search = v
		case "rol", "role":
			f.Role = v
		case "activo", "active":
			f.Active = v
		case "sort", "sortBy":
			f.SortBy = v
		case "order", "sortOrder":
			f.SortOrder = v
		case "page", "limit":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return models.ListFilter{}, fmt.Errorf("%s must be a positive number", k)
			}
			if k == "page" {
				f.Page = n
			} else {
				f.Limit = n
			}
		default:
			return models.ListFilter{}, fmt.Errorf("unknown list option %q", k)
		}
	}
	return f, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (a *App) List(ctx context.Context, args []string) error {
	if err := a.requireSuperUser(); err != nil {
		return err
	}
	f, err := listFilter(args)
	if err != nil {
		return err
	}

	page, err := a.Users.List(ctx, f)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOGIN\tEMAIL\tCOMPANY\tROLE\tACTIVE\tCREATED")
	for _, u := range page.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			u.ID, u.DisplayName, u.LoginName, u.Email, u.CompanyID, u.Role, yesNo(u.Active), formatTime(u.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := page.Pagination
	a.printf("Page %d of %d, %d users (source: %s)\n", p.CurrentPage, p.TotalPages, p.TotalItems, a.Dispatcher.LastSource())
	return nil
}

func (a *App) printUser(u *models.User) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.DisplayName)
	fmt.Fprintf(tw, "Login:\t%s\n", u.LoginName)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Company:\t%d\n", u.CompanyID)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Active:\t%s\n", yesNo(u.Active))
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(u.CreatedAt))
	fmt.Fprintf(tw, "Modified:\t%s\n", formatTime(u.UpdatedAt))
	_ = tw.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	if err := a.requireSuperUser(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	u, err := a.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

func parseRole(s string) (models.Role, error) {
	switch strings.ToLower(s) {
	case "1", "super", "superuser":
		return models.RoleSuperUser, nil
	case "2", "standard", "user":
		return models.RoleStandardUser, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (a *App) Add(ctx context.Context) error {
	if err := a.requireSuperUser(); err != nil {
		return err
	}

	var d models.CreateUserData
	var err error
	if d.DisplayName, err = getSimpleText(a.in, "Name", a.out); err != nil {
		return err
	}
	if d.LoginName, err = getSimpleText(a.in, "Login", a.out); err != nil {
		return err
	}
	if d.Email, err = getSimpleText(a.in, "Email", a.out); err != nil {
		return err
	}
	if d.Password, err = getPassword(a.in, "Password", a.out); err != nil {
		return err
	}
	if d.CompanyID, err = GetInt(a.in, "Company id [1]", 1, a.out); err != nil {
		return err
	}
	role, err := getSimpleText(a.in, "Role (1=super, 2=standard) [2]", a.out)
	if err != nil {
		return err
	}
	d.Role = models.RoleStandardUser
	if role != "" {
		if d.Role, err = parseRole(role); err != nil {
			return err
		}
	}

	u, err := a.Users.Create(ctx, d)
	if err != nil {
		return err
	}
	a.printf("Created user %d (%s)\n", u.ID, u.LoginName)
	return nil
}

// promptChange asks for a new value showing the current one; an empty
// answer keeps it and yields nil.
func (a *App) promptChange(label, current string) (*string, error) {
	s, err := getSimpleText(a.in, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil || s == "" || s == current {
		return nil, err
	}
	return &s, nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if err := a.requireSuperUser(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	u, err := a.Users.Get(ctx, id)
	if err != nil {
		return err
	}

	var d models.UpdateUserData
	if d.DisplayName, err = a.promptChange("Name", u.DisplayName); err != nil {
		return err
	}
	if d.LoginName, err = a.promptChange("Login", u.LoginName); err != nil {
		return err
	}
	if d.Email, err = a.promptChange("Email", u.Email); err != nil {
		return err
	}

	pw, err := getPassword(a.in, "New password (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if pw != "" {
		d.Password = &pw
	}

	company, err := a.promptChange("Company id", strconv.FormatInt(u.CompanyID, 10))
	if err != nil {
		return err
	}
	if company != nil {
		n, err := strconv.ParseInt(*company, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", *company)
		}
		d.CompanyID = &n
	}

	role, err := a.promptChange("Role", strconv.Itoa(int(u.Role)))
	if err != nil {
		return err
	}
	if role != nil {
		r, err := parseRole(*role)
		if err != nil {
			return err
		}
		d.Role = &r
	}

	active, err := a.promptChange("Active (yes/no)", yesNo(u.Active))
	if err != nil {
		return err
	}
	if active != nil {
		v := strings.HasPrefix(strings.ToLower(*active), "y")
		d.Active = &v
	}

	updated, err := a.Users.Update(ctx, id, d)
	if err != nil {
		return err
	}
	a.printf("Updated user %d\n", updated.ID)
	a.printUser(updated)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireSuperUser(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if self := a.Session.Identity(); self != nil && self.ID == id {
		return fmt.Errorf("refusing to delete the logged-in account")
	}

	ok, err := Confirm(a.in, fmt.Sprintf("Delete user %d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled\n")
		return nil
	}

	if err := a.Users.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted user %d\n", id)
	return nil
}
