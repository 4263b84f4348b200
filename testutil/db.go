package testutil

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mmatt-net/site/database"
	"github.com/mmatt-net/site/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema applied
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateProject inserts a published project with the given slug
func CreateProject(t *testing.T, db *gorm.DB, slug string) models.Project {
	t.Helper()

	project := models.Project{Entry: models.Entry{
		Slug:     slug,
		Title:    "Project " + slug,
		Category: "code",
		Markdown: "# " + slug + "\n\nsome *text*",
		Status:   models.StatusPublished,
	}}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// CreateUser inserts a user as if it had logged in
func CreateUser(t *testing.T, db *gorm.DB, id, displayName string) models.User {
	t.Helper()

	user := models.User{
		ID:              id,
		Username:        displayName,
		DisplayName:     displayName,
		ProfileImageURL: "https://example.com/" + id + ".png",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CountComments counts every stored comment
func CountComments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	return count
}

// TokenIssuer is anything that can sign a session token for a user
type TokenIssuer interface {
	GenerateToken(userID string) (string, time.Time, error)
}

// SessionCookie returns a valid session cookie for userID
func SessionCookie(t *testing.T, issuer TokenIssuer, userID string) *http.Cookie {
	t.Helper()

	token, _, err := issuer.GenerateToken(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: "access_token", Value: token}
}
