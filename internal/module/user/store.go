package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"techfest-backend/internal/global/database"
	"techfest-backend/internal/model"

	"gorm.io/gorm"
)

// Store persists accounts. Emails are looked up normalized and roll numbers trimmed.
// Insert and Update must enforce uniqueness themselves and report conflicts as
// *DuplicateKeyError, since callers' pre-checks can race.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByRollNo(ctx context.Context, rollNo string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	ExistsAdmin(ctx context.Context) (bool, error)
	Insert(ctx context.Context, a *Account) (*Account, error)
	Update(ctx context.Context, id uint, patch Patch) (*Account, error)
	ListStudents(ctx context.Context, offset, limit int) ([]*Account, int64, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) first(ctx context.Context, query string, args ...any) (*Account, error) {
	var row model.User
	err := s.db.WithContext(ctx).Where(query, args...).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query user: %w", err)
	}
	return toAccount(&row), nil
}

func (s *gormStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return s.first(ctx, "email = ?", NormalizeEmail(email))
}

func (s *gormStore) FindByRollNo(ctx context.Context, rollNo string) (*Account, error) {
	return s.first(ctx, "roll_no = ? AND role = ?", NormalizeRollNo(rollNo), model.RoleStudent)
}

func (s *gormStore) FindByID(ctx context.Context, id uint) (*Account, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *gormStore) ExistsAdmin(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) Insert(ctx context.Context, a *Account) (*Account, error) {
	row := toRow(a)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, classify(err)
	}
	return toAccount(row), nil
}

func (s *gormStore) Update(ctx context.Context, id uint, patch Patch) (*Account, error) {
	var row model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		row.Name = strings.TrimSpace(patch.Name)
		row.Email = NormalizeEmail(patch.Email)
		if patch.Student != nil && row.Role == model.RoleStudent {
			rollNo := NormalizeRollNo(patch.Student.RollNo)
			college := strings.TrimSpace(patch.Student.College)
			row.RollNo = &rollNo
			row.College = &college
		}
		if patch.PasswordHash != "" {
			row.Password = patch.PasswordHash
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, classify(err)
	}
	return toAccount(&row), nil
}

func (s *gormStore) ListStudents(ctx context.Context, offset, limit int) ([]*Account, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleStudent)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	var rows []model.User
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	accounts := make([]*Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, toAccount(&rows[i]))
	}
	return accounts, total, nil
}

// duplicateKeys maps a violated index (MySQL) or column (SQLite) to its Key.
var duplicateKeys = map[string]Key{
	model.IndexUserEmail:     KeyEmail,
	"email":                  KeyEmail,
	model.IndexUserRollNo:    KeyRollNo,
	"roll_no":                KeyRollNo,
	model.IndexUserAdminSlot: KeyAdmin,
	"admin_slot":             KeyAdmin,
}

// classify turns a unique-index violation into *DuplicateKeyError.
func classify(err error) error {
	name, ok := database.DuplicateKey(err)
	if !ok {
		return fmt.Errorf("write user: %w", err)
	}
	key, ok := duplicateKeys[name]
	if !ok {
		return fmt.Errorf("write user: unrecognized unique key %q: %w", name, err)
	}
	return &DuplicateKeyError{Key: key, Err: err}
}

func toRow(a *Account) *model.User {
	row := &model.User{
		Name:     strings.TrimSpace(a.Name),
		Email:    NormalizeEmail(a.Email),
		Password: a.PasswordHash,
		Role:     string(a.Role()),
	}
	row.ID = a.ID
	switch p := a.Profile.(type) {
	case Student:
		rollNo := NormalizeRollNo(p.RollNo)
		college := strings.TrimSpace(p.College)
		row.RollNo = &rollNo
		row.College = &college
	case Admin:
		slot := 1
		row.AdminSlot = &slot
	}
	return row
}

func toAccount(row *model.User) *Account {
	a := &Account{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.Password,
		CreatedAt:    row.CreatedAt,
	}
	if row.Role == model.RoleAdmin {
		a.Profile = Admin{}
	} else {
		a.Profile = Student{RollNo: deref(row.RollNo), College: deref(row.College)}
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
