package user

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"techfest-backend/config"
	"techfest-backend/internal/global/database"
	"techfest-backend/internal/global/jwt"
	"techfest-backend/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{Mode: config.ModeRelease})
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		Mode: config.ModeRelease,
		Database: config.Database{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "techfest.db"),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newIssuer(t *testing.T) *jwt.Issuer {
	t.Helper()
	issuer, err := jwt.NewIssuer("test-secret", 7*24*time.Hour)
	require.NoError(t, err)
	return issuer
}

type fixture struct {
	db      *gorm.DB
	store   Store
	issuer  *jwt.Issuer
	service *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := openDB(t)
	store := NewGormStore(db)
	issuer := newIssuer(t)
	opts = append([]Option{WithLogger(log)}, opts...)
	return &fixture{
		db:      db,
		store:   store,
		issuer:  issuer,
		service: NewService(store, tools.NewBcryptHasher(bcrypt.MinCost), issuer, opts...),
	}
}

func jane() RegisterInput {
	return RegisterInput{
		Name:     "Jane Doe",
		Email:    "Jane@X.com",
		Password: "secret1",
		RollNo:   "ab123",
		College:  "MMM University",
	}
}
