package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an in-memory database with the pool capped at one connection,
// so concurrent transactions serialize the same way Postgres row locks make
// them serialize in production.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Submission{},
		&models.VerificationLog{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		JWTAccessExpiry:   30 * time.Minute,
		MaxPendingPerUser: 3,
		GlobalPendingCap:  1000,
		DefaultPageSize:   50,
		MaxPageSize:       100,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// pendingSeq spaces out CreatedAt values so ordering assertions never tie.
var pendingSeq atomic.Int64

func createPending(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.Submission {
	t.Helper()

	submission := &models.Submission{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: "a description",
		Type:        models.TypeIdea,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC().Add(time.Duration(pendingSeq.Add(1)) * time.Millisecond),
	}
	require.NoError(t, db.Create(submission).Error)
	return submission
}
