package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/atelier-moveis/atelier-backend/database"
	"github.com/atelier-moveis/atelier-backend/database/model"
	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("ATELIER_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeProvider resolves tokens from a fixed map.
type fakeProvider struct {
	tokens map[string]identity.User
}

func (f *fakeProvider) CreateUser(context.Context, string, string) (*identity.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) SignIn(context.Context, string, string) (*identity.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) UserFromToken(_ context.Context, token string) (*identity.User, error) {
	user, ok := f.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &user, nil
}

func (f *fakeProvider) Recover(context.Context, string, string) error {
	return errors.New("not implemented")
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:mw_%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func authTestRouter(provider identity.Provider) *gin.Engine {
	engine := gin.New()
	engine.GET("/private", AuthRequired(provider), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.Id})
	})
	return engine
}

func TestAuthRequired(t *testing.T) {
	provider := &fakeProvider{tokens: map[string]identity.User{
		"valid-token": {Id: "u-1", Email: "ana@example.com"},
	}}
	engine := authTestRouter(provider)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "missing header",
			header:       "",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Token não enviado"}`,
		},
		{
			name:         "header without bearer token",
			header:       "Bearer ",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Token não enviado"}`,
		},
		{
			name:         "wrong scheme",
			header:       "Basic abc123",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Token não enviado"}`,
		},
		{
			name:         "rejected token",
			header:       "Bearer forged",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Token inválido"}`,
		},
		{
			name:         "valid token",
			header:       "Bearer valid-token",
			expectedCode: http.StatusOK,
			expectedBody: `{"id":"u-1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.expectedCode {
				t.Errorf("status = %d, expected %d", w.Code, tt.expectedCode)
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("body = %s, expected %s", w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestAdminRequired(t *testing.T) {
	db := openTestDB(t)
	seed := []model.Profile{
		{Id: "admin-1", Role: model.RoleAdmin},
		{Id: "client-1", Role: model.RoleCliente},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed profiles: %v", err)
	}

	provider := &fakeProvider{tokens: map[string]identity.User{
		"admin-token":     {Id: "admin-1"},
		"client-token":    {Id: "client-1"},
		"no-profile-token": {Id: "ghost-1"},
	}}
	profiles := service.NewProfileService(db)

	engine := gin.New()
	engine.GET("/admin-only", AuthRequired(provider), AdminRequired(profiles), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name         string
		token        string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "admin passes",
			token:        "admin-token",
			expectedCode: http.StatusOK,
			expectedBody: `{"ok":true}`,
		},
		{
			name:         "client is rejected",
			token:        "client-token",
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"Acesso negado"}`,
		},
		{
			name:         "missing profile is rejected",
			token:        "no-profile-token",
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"Acesso negado"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.expectedCode {
				t.Errorf("status = %d, expected %d", w.Code, tt.expectedCode)
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("body = %s, expected %s", w.Body.String(), tt.expectedBody)
			}
		})
	}
}
