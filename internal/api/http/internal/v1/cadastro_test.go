package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apiHttp "github.com/cadastro-livre/backend/internal/api/http"
	"github.com/cadastro-livre/backend/internal/config"
	"github.com/cadastro-livre/backend/internal/domain"
	"github.com/cadastro-livre/backend/internal/repository"
	"github.com/cadastro-livre/backend/internal/service"
	"github.com/cadastro-livre/backend/pkg/hash"
)

type failingRegistrations struct {
	mock.Mock
}

func (m *failingRegistrations) Create(ctx context.Context, registration *domain.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *failingRegistrations) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	args := m.Called(ctx, email)
	return nil, args.Error(1)
}

func (m *failingRegistrations) ConfirmByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestRouter(repo repository.Registrations) *gin.Engine {
	cfg := &config.Config{
		App:          config.AppConfig{LoginURL: "/login"},
		Registration: config.RegistrationConfig{ConfirmationPolicy: service.PolicyToken},
	}

	services := service.NewServices(service.Deps{
		Logger: zap.NewNop(),
		Config: cfg,
		Hasher: hash.NewBcryptHasher(bcrypt.MinCost),
		Repos:  &repository.Repositories{Registrations: repo},
	})

	return apiHttp.NewHandlers(services, cfg).Init(cfg)
}

func postCadastro(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cadastros", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"email":          "maria@example.com",
		"senha":          "s3nha-forte",
		"termos_aceitos": true,
		"cpf":            "123.456.789-09",
		"nome_completo":  "Maria da Silva",
	}
}

func TestCreateCadastro_Success(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	rec := postCadastro(t, router, validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "maria@example.com")
	assert.NotContains(t, rec.Body.String(), "s3nha-forte")
}

func TestCreateCadastro_MissingField(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	body := validBody()
	delete(body, "senha")

	rec := postCadastro(t, router, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dados essenciais")
}

func TestCreateCadastro_InvalidEmail(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	body := validBody()
	body["email"] = "not-an-email"

	rec := postCadastro(t, router, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "formato do e-mail")
}

func TestCreateCadastro_InvalidCPF(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	body := validBody()
	body["cpf"] = "123.456.789-08"

	rec := postCadastro(t, router, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CPF")
}

func TestCreateCadastro_Duplicate(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	rec := postCadastro(t, router, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	second := validBody()
	second["cpf"] = "529.982.247-25"

	rec = postCadastro(t, router, second)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "já cadastrado")
}

func TestCreateCadastro_StorageFailure(t *testing.T) {
	repo := new(failingRegistrations)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	router := newTestRouter(repo)

	rec := postCadastro(t, router, validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Diagnostic detail is not echoed to the caller.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCreateCadastro_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cadastros", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestConfirmCadastro_MissingToken(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cadastros/confirmar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmCadastro_InvalidToken(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cadastros/confirmar?token=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?status=invalid_token", rec.Header().Get("Location"))
}

func TestConfirmCadastro_Success(t *testing.T) {
	repo := repository.NewMemoryRegistrations()
	router := newTestRouter(repo)

	rec := postCadastro(t, router, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := repo.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	token := stored.ConfirmacaoToken.String

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cadastros/confirmar?token="+token, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?status=confirmed", rec.Header().Get("Location"))

	confirmed, err := repo.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.True(t, confirmed.EmailConfirmado)

	// Replay redirects with the invalid marker, it does not re-confirm.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cadastros/confirmar?token="+token, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?status=invalid_token", rec.Header().Get("Location"))
}

func TestConfirmCadastro_StorageFailure(t *testing.T) {
	repo := new(failingRegistrations)
	repo.On("ConfirmByToken", mock.Anything, "tok").Return(errors.New("timeout"))

	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cadastros/confirmar?token=tok", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?status=error_confirming", rec.Header().Get("Location"))
}

func TestConfirmCadastro_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(repository.NewMemoryRegistrations())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cadastros/confirmar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
