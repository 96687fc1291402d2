package model

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Unique index names. Duplicate-key errors are classified by them.
const (
	IndexUserEmail     = "uk_user_email"
	IndexUserRollNo    = "uk_user_roll_no"
	IndexUserAdminSlot = "uk_user_admin_slot"
)

// User is the stored account row.
//
// RollNo and College are NULL for the admin. AdminSlot is 1 for the admin and NULL
// for students; its unique index lets at most one admin row exist.
type User struct {
	Model
	Name      string  `gorm:"type:varchar(100);not null"`
	Email     string  `gorm:"type:varchar(191);uniqueIndex:uk_user_email;not null"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role      string  `gorm:"type:varchar(16);not null;default:student"`
	RollNo    *string `gorm:"type:varchar(50);uniqueIndex:uk_user_roll_no"`
	College   *string `gorm:"type:varchar(255)"`
	AdminSlot *int    `gorm:"uniqueIndex:uk_user_admin_slot"`
}
