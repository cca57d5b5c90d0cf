package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authRepo "sathee-backend/internal/auth/repository"
	authUsecase "sathee-backend/internal/auth/usecase"
	chatUsecase "sathee-backend/internal/chat/usecase"
	userUsecase "sathee-backend/internal/user/usecase"
	"sathee-backend/pkg/config"
	"sathee-backend/pkg/llm"
	"sathee-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderMailer struct {
	sent []mailer.SendEmailParams
}

func (m *recorderMailer) SendEmail(ctx context.Context, params mailer.SendEmailParams) error {
	m.sent = append(m.sent, params)
	return nil
}

func (m *recorderMailer) lastResetCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent)
	body := m.sent[len(m.sent)-1].Body
	i := strings.LastIndex(body, "/reset-password/")
	require.GreaterOrEqual(t, i, 0)
	return body[i+len("/reset-password/"):]
}

type testServer struct {
	router *gin.Engine
	mail   *recorderMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Fake inference service.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"final_safe_response":"I'm here for you.","risk_assessment":"low"}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		FrontendURL:      "http://localhost:5173",
		AllowedOrigins:   []string{"http://localhost:5173"},
		LLMServiceURL:    upstream.URL,
	}

	repo := authRepo.NewMemoryRepository()
	mail := &recorderMailer{}
	authUc := authUsecase.NewAuthUsecase(repo, mail, cfg)
	userUc := userUsecase.NewUserUsecase(repo)
	chatUc := chatUsecase.NewChatUsecase(llm.NewClient(cfg.LLMServiceURL))

	r := gin.New()
	SetupRoutes(r, authUc, userUc, chatUc, cfg)
	return &testServer{router: r, mail: mail}
}

func (s *testServer) request(t *testing.T, method, path string, body any, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func (s *testServer) signup(t *testing.T, fullName, email, password string) (*httptest.ResponseRecorder, map[string]any) {
	return s.request(t, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"fullName": fullName, "email": email,
		"password": password, "confirmPassword": password,
	}, nil)
}

func (s *testServer) login(t *testing.T, email, password string) (*httptest.ResponseRecorder, map[string]any) {
	return s.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": email, "password": password,
	}, nil)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, body := s.request(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSignupThenLogin(t *testing.T) {
	s := newTestServer(t)

	w, body := s.signup(t, "Alice", "a@x.com", "Secret1!")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["refreshToken"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "pending", user["role"])
	userID := user["id"].(string)

	w, body = s.login(t, "a@x.com", "Secret1!")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, body["user"].(map[string]any)["id"])

	// Duplicate signup conflicts.
	w, body = s.signup(t, "Alice", "a@x.com", "Secret1!")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is already in use", body["message"])
}

func TestLoginSetsRefreshCookie(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Alice", "a@x.com", "Secret1!")

	w, body := s.login(t, "a@x.com", "Secret1!")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "refreshToken", cookie.Name)
	assert.Equal(t, body["refreshToken"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((168 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestRefreshFlow(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Alice", "a@x.com", "Secret1!")
	_, body := s.login(t, "a@x.com", "Secret1!")
	refreshToken := body["refreshToken"].(string)

	t.Run("from body, twice with the same token", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w, body := s.request(t, http.MethodPost, "/api/v1/auth/refresh",
				map[string]string{"refreshToken": refreshToken}, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, body["token"])
		}
	})

	t.Run("from cookie", func(t *testing.T) {
		header := http.Header{}
		header.Set("Cookie", "refreshToken="+refreshToken)
		w, body := s.request(t, http.MethodPost, "/api/v1/auth/refresh", nil, header)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("missing", func(t *testing.T) {
		w, body := s.request(t, http.MethodPost, "/api/v1/auth/refresh", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No refresh token provided", body["message"])
	})

	t.Run("invalid", func(t *testing.T) {
		w, body := s.request(t, http.MethodPost, "/api/v1/auth/refresh",
			map[string]string{"refreshToken": "garbage"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid refresh token", body["message"])
	})
}

func TestPasswordResetScenario(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Alice", "a@x.com", "Secret1!")

	w, _ := s.request(t, http.MethodPost, "/api/v1/auth/forgot-password",
		map[string]string{"email": "a@x.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	code := s.mail.lastResetCode(t)

	w, _ = s.request(t, http.MethodPost, "/api/v1/auth/reset-password", map[string]string{
		"token": code, "newPassword": "NewPass1!", "confirmPassword": "NewPass1!",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.login(t, "a@x.com", "Secret1!")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.login(t, "a@x.com", "NewPass1!")
	assert.Equal(t, http.StatusOK, w.Code)

	// The code is spent.
	w, body := s.request(t, http.MethodPost, "/api/v1/auth/reset-password", map[string]string{
		"token": code, "newPassword": "Other1!", "confirmPassword": "Other1!",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Token expired or invalid", body["message"])
}

func TestDeleteAccountScenario(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "Alice", "a@x.com", "Secret1!")

	w, _ := s.request(t, http.MethodDelete, "/api/v1/users/me",
		map[string]string{"email": "a@x.com", "password": "Secret1!"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.login(t, "a@x.com", "Secret1!")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatGuestAndAuthenticated(t *testing.T) {
	s := newTestServer(t)

	t.Run("guest", func(t *testing.T) {
		w, body := s.request(t, http.MethodPost, "/api/v1/chat",
			map[string]string{"user_input": "I feel overwhelmed"}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "I'm here for you.", body["botResponse"])
		assert.Equal(t, "low", body["riskAssessment"])
	})

	t.Run("authenticated", func(t *testing.T) {
		_, signupBody := s.signup(t, "Alice", "chat@x.com", "Secret1!")
		header := http.Header{}
		header.Set("Authorization", "Bearer "+signupBody["token"].(string))

		w, body := s.request(t, http.MethodPost, "/api/v1/chat",
			map[string]string{"user_input": "hello"}, header)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, body["botResponse"])
	})

	t.Run("missing input", func(t *testing.T) {
		w, _ := s.request(t, http.MethodPost, "/api/v1/chat", map[string]string{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	cfg := &config.Config{
		JWTSecret:        "s1",
		JWTRefreshSecret: "s2",
		JWTAccessExpiry:  time.Minute,
		JWTRefreshExpiry: time.Hour,
		LLMServiceURL:    upstream.URL,
	}
	repo := authRepo.NewMemoryRepository()
	authUc := authUsecase.NewAuthUsecase(repo, &recorderMailer{}, cfg)
	r := gin.New()
	SetupRoutes(r, authUc, userUsecase.NewUserUsecase(repo), chatUsecase.NewChatUsecase(llm.NewClient(upstream.URL)), cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"user_input":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestUserProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, body := s.signup(t, "Alice", "a@x.com", "Secret1!")
	userID := body["user"].(map[string]any)["id"].(string)

	w, body := s.request(t, http.MethodGet, "/api/v1/users/"+userID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Alice", user["fullName"])
	// The hash must be absent from every projection.
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)

	w, body = s.request(t, http.MethodPatch, "/api/v1/users/"+userID,
		map[string]string{"fullName": "Alice B", "role": "user"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user = body["user"].(map[string]any)
	assert.Equal(t, "Alice B", user["fullName"])
	assert.Equal(t, "user", user["role"])

	w, _ = s.request(t, http.MethodGet, "/api/v1/users/missing-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = s.request(t, http.MethodGet, "/api/v1/users", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["users"].([]any), 1)
}
