package user

import (
	"strings"
	"time"

	"techfest-backend/internal/model"
)

type Role string

const (
	RoleStudent Role = model.RoleStudent
	RoleAdmin   Role = model.RoleAdmin
)

// Profile is the role-specific part of an account: Student or Admin.
type Profile interface {
	Role() Role
}

// Student carries the fields only students have.
type Student struct {
	RollNo  string
	College string
}

func (Student) Role() Role { return RoleStudent }

type Admin struct{}

func (Admin) Role() Role { return RoleAdmin }

// Account is a user record. PasswordHash is always a bcrypt digest.
type Account struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	Profile      Profile
}

func (a *Account) Role() Role {
	return a.Profile.Role()
}

// View is the public projection of an account. It never carries the password hash.
type View struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	RollNo  string `json:"rollNo,omitempty"`
	College string `json:"college,omitempty"`
}

func (a *Account) View() View {
	v := View{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role(),
	}
	if s, ok := a.Profile.(Student); ok {
		v.RollNo = s.RollNo
		v.College = s.College
	}
	return v
}

// Patch is the set of mutable fields applied by a profile update.
// Student is nil for admins; an empty PasswordHash keeps the current password.
type Patch struct {
	Name         string
	Email        string
	Student      *Student
	PasswordHash string
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeRollNo(rollNo string) string {
	return strings.TrimSpace(rollNo)
}
