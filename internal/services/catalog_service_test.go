package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVerifiedPagination(t *testing.T) {
	db := testDB(t)
	svc := NewCatalogService(db)
	user := createUser(t, db, "alice", false)
	admin := createUser(t, db, "admin", false)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		reviewedAt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&models.Submission{
			ID:          uuid.New(),
			UserID:      user.ID,
			Title:       fmt.Sprintf("asset %02d", i),
			Description: "a description",
			Type:        models.TypeAsset,
			Status:      models.StatusVerified,
			ReviewedAt:  &reviewedAt,
			ReviewedBy:  &admin.ID,
		}).Error)
	}
	// A pending and a rejected submission must never show up.
	createPending(t, db, user.ID, "still pending")
	require.NoError(t, db.Create(&models.Submission{
		ID: uuid.New(), UserID: user.ID, Title: "rejected",
		Description: "a description", Type: models.TypeAsset,
		Status: models.StatusRejected,
	}).Error)

	page1, total, err := svc.ListVerified(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)

	page2, _, err := svc.ListVerified(2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	// Past the end: empty list, not an error.
	page3, _, err := svc.ListVerified(3, 10)
	require.NoError(t, err)
	assert.Empty(t, page3)

	// Deterministic, non-overlapping ordering across pages.
	seen := map[uuid.UUID]bool{}
	for _, s := range append(page1, page2...) {
		assert.False(t, seen[s.ID], "no submission repeats across pages")
		seen[s.ID] = true
		assert.Equal(t, models.StatusVerified, s.Status)
	}
	assert.Len(t, seen, 15)

	// Newest decision first.
	assert.Equal(t, "asset 14", page1[0].Title)
	assert.Equal(t, "asset 00", page2[4].Title)
}
