package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"techfest-backend/internal/model"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(name, email, rollNo string) *Account {
	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$placeholder",
		Profile:      Student{RollNo: rollNo, College: "MMM University"},
	}
}

func TestGormStoreInsertAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openDB(t))

	a, err := store.Insert(ctx, student(" Jane Doe ", " Jane@X.com ", " ab123 "))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, "jane@x.com", a.Email)
	assert.Equal(t, "Jane Doe", a.Name)
	assert.Equal(t, Student{RollNo: "ab123", College: "MMM University"}, a.Profile)
	assert.False(t, a.CreatedAt.IsZero())

	byEmail, err := store.FindByEmail(ctx, "JANE@x.com ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	byRoll, err := store.FindByRollNo(ctx, "ab123 ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byRoll.ID)

	byID, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, byID.Email)

	_, err = store.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindByID(ctx, a.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openDB(t))

	_, err := store.Insert(ctx, student("Jane Doe", "jane@x.com", "ab123"))
	require.NoError(t, err)

	_, err = store.Insert(ctx, student("Jane Two", "JANE@x.com", "zz999"))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyEmail, dup.Key)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = store.Insert(ctx, student("John Roe", "john@x.com", "ab123"))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyRollNo, dup.Key)
}

func TestGormStoreSingleAdmin(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	store := NewGormStore(db)

	exists, err := store.ExistsAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	admin, err := store.Insert(ctx, &Account{Name: "System Administrator", Email: "admin@gmail.com", PasswordHash: "h", Profile: Admin{}})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role())
	assert.Equal(t, "", admin.View().RollNo)

	exists, err = store.ExistsAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.Insert(ctx, &Account{Name: "Second Admin", Email: "root@gmail.com", PasswordHash: "h", Profile: Admin{}})
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyAdmin, dup.Key)

	var row model.User
	require.NoError(t, db.First(&row, admin.ID).Error)
	assert.Nil(t, row.RollNo)
	assert.Nil(t, row.College)
	require.NotNil(t, row.AdminSlot)

	_, err = store.FindByRollNo(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openDB(t))

	a, err := store.Insert(ctx, student("Jane Doe", "jane@x.com", "ab123"))
	require.NoError(t, err)
	b, err := store.Insert(ctx, student("John Roe", "john@x.com", "cd456"))
	require.NoError(t, err)

	updated, err := store.Update(ctx, a.ID, Patch{
		Name:    " Jane Smith ",
		Email:   "Jane.Smith@X.com",
		Student: &Student{RollNo: " ab124 ", College: " IIT Delhi "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "jane.smith@x.com", updated.Email)
	assert.Equal(t, Student{RollNo: "ab124", College: "IIT Delhi"}, updated.Profile)
	assert.Equal(t, a.PasswordHash, updated.PasswordHash)

	updated, err = store.Update(ctx, a.ID, Patch{Name: "Jane Smith", Email: "jane.smith@x.com", PasswordHash: "new-hash"})
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)
	assert.Equal(t, Student{RollNo: "ab124", College: "IIT Delhi"}, updated.Profile)

	_, err = store.Update(ctx, a.ID, Patch{Name: "Jane Smith", Email: "john@x.com"})
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyEmail, dup.Key)

	_, err = store.Update(ctx, a.ID, Patch{Name: "Jane Smith", Email: "jane.smith@x.com", Student: &Student{RollNo: "cd456", College: "IIT"}})
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyRollNo, dup.Key)

	_, err = store.Update(ctx, b.ID+100, Patch{Name: "Ghost", Email: "ghost@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreListStudents(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openDB(t))

	_, err := store.Insert(ctx, &Account{Name: "System Administrator", Email: "admin@gmail.com", PasswordHash: "h", Profile: Admin{}})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := store.Insert(ctx, student("Student", fmt.Sprintf("s%d@x.com", i), fmt.Sprintf("roll%d", i)))
		require.NoError(t, err)
	}

	page, total, err := store.ListStudents(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "s2@x.com", page[0].Email)
	assert.Equal(t, "s3@x.com", page[1].Email)
	for _, a := range page {
		assert.Equal(t, RoleStudent, a.Role())
	}
}

func TestClassifyPassesThroughOtherErrors(t *testing.T) {
	err := classify(errors.New("connection refused"))
	assert.NotErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClassifyMySQLByIndexName(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Key
	}{
		{"email", "Duplicate entry 'jane@x.com' for key 'user.uk_user_email'", KeyEmail},
		{"email that looks like roll_no", "Duplicate entry 'roll_no@x.com' for key 'user.uk_user_email'", KeyEmail},
		{"email that looks like admin_slot", "Duplicate entry 'admin_slot@x.com' for key 'user.uk_user_email'", KeyEmail},
		{"roll number", "Duplicate entry 'email' for key 'user.uk_user_roll_no'", KeyRollNo},
		{"admin slot", "Duplicate entry '1' for key 'uk_user_admin_slot'", KeyAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(&mysql.MySQLError{Number: 1062, Message: tt.message})
			var dup *DuplicateKeyError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tt.want, dup.Key)
		})
	}

	err := classify(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'user.PRIMARY'"})
	assert.NotErrorIs(t, err, ErrDuplicateKey)
}

func TestGormStoreDuplicateEmailResemblingOtherKeys(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openDB(t))

	_, err := store.Insert(ctx, student("Jane Doe", "roll_no.admin_slot@x.com", "ab123"))
	require.NoError(t, err)
	_, err = store.Insert(ctx, student("Jane Doe", "roll_no.admin_slot@x.com", "cd456"))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KeyEmail, dup.Key)
	assert.ErrorIs(t, duplicateToDomain(err), ErrDuplicateEmail)
}
