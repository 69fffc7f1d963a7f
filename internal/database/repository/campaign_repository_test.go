package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCampaignRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" WHERE id = $1`)).
		WithArgs("missing", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "created_at"}).
		AddRow("c1", "u1", "Promo blast", "processing", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" WHERE id = $1`)).
		WithArgs("c1", 1).
		WillReturnRows(rows)

	campaign, err := repo.GetByID("c1")
	require.NoError(t, err)
	assert.Equal(t, "Promo blast", campaign.Title)
	assert.Equal(t, models.StatusProcessing, campaign.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_GetByUserID_Paginates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "campaigns" WHERE user_id = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "campaigns" WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs("u1", 2, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).
			AddRow("c5", "u1", "Fifth").
			AddRow("c6", "u1", "Sixth"))

	campaigns, total, err := repo.GetByUserID("u1", 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	assert.Len(t, campaigns, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_UpdateFields_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "campaigns" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateFields("missing", map[string]interface{}{"status": models.StatusPending})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_Delete_RemovesLedgerRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaign_messages" WHERE campaign_id = $1`)).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "campaigns" WHERE id = $1`)).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete("c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
