package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/otp"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeCodeStore is an in-memory otp.Store with no expiry.
type fakeCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (s *fakeCodeStore) Set(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[email]
	if !ok {
		return "", otp.ErrCodeNotFound
	}
	return code, nil
}

func (s *fakeCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

type sentMail struct {
	To   string
	Code string
}

// fakeMailer records deliveries instead of talking SMTP.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp send failed")
	}
	m.sent = append(m.sent, sentMail{To: to, Code: code})
	return nil
}

func (m *fakeMailer) lastSent(t *testing.T) sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail was sent")
	return m.sent[len(m.sent)-1]
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	codes  *fakeCodeStore
	mail   *fakeMailer
}

var testSecret = []byte("test-secret")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	codes := newFakeCodeStore()
	mail := &fakeMailer{}
	log := zap.NewNop()

	r := gin.New()
	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(db, codes, mail, testSecret, log),
		Food:      handlers.NewFoodHandler(db, log),
		Cart:      handlers.NewCartHandler(db, log),
		Order:     handlers.NewOrderHandler(db, log),
		JWTSecret: testSecret,
	})

	return &testEnv{router: r, db: db, codes: codes, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// bearerToken signs a token for the given role, for exercising the guarded
// catalog routes without running a full signup.
func bearerToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	token, err := middleware.GenerateToken(&models.User{ID: 99, Name: "Role Holder", Role: role}, testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func (e *testEnv) createFood(t *testing.T, name string, price float64, available bool) models.Food {
	t.Helper()
	food := models.Food{Name: name, Description: name + " description", Price: price, IsAvailable: available}
	require.NoError(t, e.db.Create(&food).Error)
	return food
}

func (e *testEnv) addToCart(t *testing.T, userID, foodID uint, quantity int) {
	t.Helper()
	w, _ := e.do(t, http.MethodPost, "/api/cart", gin.H{
		"userId":   userID,
		"foodId":   foodID,
		"quantity": quantity,
	})
	require.Equal(t, http.StatusOK, w.Code)
}
