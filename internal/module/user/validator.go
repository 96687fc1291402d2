package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLen     = 2
	minRollNoLen   = 3
	minCollegeLen  = 3
	minPasswordLen = 6
	maxPasswordLen = 50
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	rollNoPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Violations accumulates field defects; checks never stop at the first one.
type Violations []string

func (v *Violations) Add(problem string) {
	if problem != "" {
		*v = append(*v, problem)
	}
}

// Err returns nil when nothing was recorded.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Problems: append([]string(nil), v...)}
}

// Each check returns "" when the field is acceptable, otherwise the defect.

func CheckName(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "Name is required"
	case utf8.RuneCountInString(name) < minNameLen || !namePattern.MatchString(name):
		return "Name must be at least 2 characters long and contain only letters and spaces"
	}
	return ""
}

func CheckEmail(email string) string {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return "Email is required"
	case !emailPattern.MatchString(email):
		return "Please enter a valid email address (e.g., user@example.com)"
	}
	return ""
}

func CheckRollNo(rollNo string) string {
	rollNo = strings.TrimSpace(rollNo)
	switch {
	case rollNo == "":
		return "Roll number is required"
	case utf8.RuneCountInString(rollNo) < minRollNoLen || !rollNoPattern.MatchString(rollNo):
		return "Roll number must be at least 3 characters long and contain only letters and numbers"
	}
	return ""
}

func CheckCollege(college string) string {
	college = strings.TrimSpace(college)
	switch {
	case college == "":
		return "College name is required"
	case utf8.RuneCountInString(college) < minCollegeLen:
		return "College name must be at least 3 characters long"
	}
	return ""
}

// CheckPassword measures length in bytes, which keeps every accepted password
// inside bcrypt's 72-byte input limit.
func CheckPassword(password string) string {
	switch {
	case password == "":
		return "Password is required"
	case len(password) < minPasswordLen:
		return "Password must be at least 6 characters long"
	case len(password) > maxPasswordLen:
		return "Password must be less than 50 characters"
	}
	return ""
}

func checkNewPassword(oldPassword, newPassword string) string {
	switch {
	case newPassword == "":
		return ""
	case oldPassword == "":
		return "Current password is required to change password"
	case len(newPassword) < minPasswordLen:
		return "New password must be at least 6 characters long"
	case len(newPassword) > maxPasswordLen:
		return "New password must be less than 50 characters"
	}
	return ""
}

func validateRegistration(in RegisterInput) error {
	var v Violations
	v.Add(CheckName(in.Name))
	v.Add(CheckEmail(in.Email))
	v.Add(CheckPassword(in.Password))
	v.Add(CheckRollNo(in.RollNo))
	v.Add(CheckCollege(in.College))
	return v.Err()
}

func validateLogin(in LoginInput) error {
	var v Violations
	v.Add(CheckEmail(in.Email))
	if in.Password == "" {
		v.Add("Password is required")
	}
	return v.Err()
}

func validateProfileUpdate(role Role, in UpdateProfileInput) error {
	var v Violations
	v.Add(CheckName(in.Name))
	v.Add(CheckEmail(in.Email))
	if role == RoleStudent {
		v.Add(CheckCollege(in.College))
		v.Add(CheckRollNo(in.RollNo))
	}
	v.Add(checkNewPassword(in.OldPassword, in.NewPassword))
	return v.Err()
}
