package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/skychat/internal/database"
	"github.com/hugh/skychat/internal/database/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with the chat schema
// applied and foreign keys enforced. It is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupTestDB(t, db) })

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

func shortID() string {
	return uuid.New().String()[:8]
}

// CreateTestOrg creates an organization with a unique slug
func CreateTestOrg(t *testing.T, db *gorm.DB) *models.Organization {
	t.Helper()

	slug := "test-org-" + shortID()
	org := &models.Organization{
		ID:     "org_" + shortID(),
		Domain: slug + ".example.com",
		Slug:   slug,
		Name:   "Test Organization",
	}

	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateTestUser creates a user with a unique email
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:        "user_" + shortID(),
		Email:     "test-" + shortID() + "@example.com",
		FirstName: "Test",
		LastName:  "User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestChat creates a private chat owned by user inside org
func CreateTestChat(t *testing.T, db *gorm.DB, org *models.Organization, user *models.User) *models.Chat {
	t.Helper()

	chat := &models.Chat{
		Title:          "Flights to Bangkok",
		OrganizationID: org.ID,
		Visibility:     models.VisibilityPrivate,
	}
	if user != nil {
		chat.UserID = &user.ID
	}

	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("failed to create test chat: %v", err)
	}

	return chat
}

// CreateTestMessage appends a message with a single text part to chat
func CreateTestMessage(t *testing.T, db *gorm.DB, chat *models.Chat, role, text string) *models.Message {
	t.Helper()

	content, err := json.Marshal([]map[string]string{{"type": "text", "text": text}})
	if err != nil {
		t.Fatalf("failed to marshal message content: %v", err)
	}

	msg := &models.Message{
		ChatID:  chat.ID,
		Role:    role,
		Content: datatypes.JSON(content),
	}

	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}

	return msg
}

// CreateTestDocument creates a text document owned by user
func CreateTestDocument(t *testing.T, db *gorm.DB, user *models.User, title string) *models.Document {
	t.Helper()

	body := "Day 1: arrive in " + title
	doc := &models.Document{
		Title:   title,
		Content: &body,
		Kind:    models.DocumentKindText,
		UserID:  user.ID,
	}

	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}

	return doc
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// JSONRequest creates an HTTP request whose body is v encoded as JSON.
// A string or []byte body is sent as-is so tests can post malformed input.
func JSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	case []byte:
		reqBody = bytes.NewBuffer(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected a JSON response, got Content-Type %q. Body: %s", ct, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}
