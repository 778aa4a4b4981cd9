package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/models"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestFilteredByStatusReturnsExactSubset(t *testing.T) {
	s, _, _ := seededStore(
		&models.ContentPost{ID: "1", Status: models.PostStatusDraft, Platform: models.PlatformInstagram},
		&models.ContentPost{ID: "2", Status: models.PostStatusPending, Platform: models.PlatformInstagram},
		&models.ContentPost{ID: "3", Status: models.PostStatusDraft, Platform: models.PlatformTiktok},
	)

	drafts := s.Filtered(models.PostStatusDraft, "")
	require.Len(t, drafts, 2)
	for _, p := range drafts {
		assert.Equal(t, models.PostStatusDraft, p.Status)
	}

	igDrafts := s.Filtered(models.PostStatusDraft, models.PlatformInstagram)
	require.Len(t, igDrafts, 1)
	assert.Equal(t, "1", igDrafts[0].ID)

	assert.Len(t, s.Filtered("", ""), 3)
	assert.Empty(t, s.Filtered(models.PostStatusApproved, ""))
}

func TestByDateBucketsEveryPostExactlyOnce(t *testing.T) {
	s, _, _ := seededStore(
		&models.ContentPost{ID: "1", Status: models.PostStatusDraft, ScheduledTime: day(t, "2026-09-01T09:00")},
		&models.ContentPost{ID: "2", Status: models.PostStatusDraft, ScheduledTime: day(t, "2026-09-01T17:30")},
		&models.ContentPost{ID: "3", Status: models.PostStatusDraft, ScheduledTime: day(t, "2026-09-02T08:00")},
	)

	grouped := s.ByDate("", "")

	require.Len(t, grouped, 2)
	require.Len(t, grouped["2026-09-01"], 2)
	require.Len(t, grouped["2026-09-02"], 1)

	// Insertion order of the filtered list carries into the bucket.
	assert.Equal(t, "1", grouped["2026-09-01"][0].ID)
	assert.Equal(t, "2", grouped["2026-09-01"][1].ID)

	total := 0
	for _, bucket := range grouped {
		total += len(bucket)
	}
	assert.Equal(t, 3, total)
}

func TestByDateHonorsFilter(t *testing.T) {
	s, _, _ := seededStore(
		&models.ContentPost{ID: "1", Status: models.PostStatusDraft, ScheduledTime: day(t, "2026-09-01T09:00")},
		&models.ContentPost{ID: "2", Status: models.PostStatusApproved, ScheduledTime: day(t, "2026-09-01T10:00")},
	)

	grouped := s.ByDate(models.PostStatusApproved, "")
	require.Len(t, grouped, 1)
	require.Len(t, grouped["2026-09-01"], 1)
	assert.Equal(t, "2", grouped["2026-09-01"][0].ID)
}

func TestStatusCounts(t *testing.T) {
	s, _, _ := seededStore(
		&models.ContentPost{ID: "1", Status: models.PostStatusDraft},
		&models.ContentPost{ID: "2", Status: models.PostStatusDraft},
		&models.ContentPost{ID: "3", Status: models.PostStatusPending},
		&models.ContentPost{ID: "4", Status: models.PostStatusApproved},
	)

	counts := s.StatusCounts()
	assert.Equal(t, 2, counts[models.PostStatusDraft])
	assert.Equal(t, 1, counts[models.PostStatusPending])
	assert.Equal(t, 1, counts[models.PostStatusApproved])
	assert.Zero(t, counts[models.PostStatusRejected])
}
