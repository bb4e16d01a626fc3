package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"agrisense-be/internal/bootstrap"
	"agrisense-be/internal/config"
	"agrisense-be/internal/data"
	"agrisense-be/internal/pkg/testdb"
	"agrisense-be/internal/server"
	"agrisense-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  [][]llm.Message
}

func (s *scriptedLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]llm.Message(nil), history...))
	return s.answer, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (s *scriptedLLM) lastCall() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string, string) ([]float32, error) {
	return make([]float32, 768), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			CorsAllowedOrigins: "*",
			IndexTopic:         "INDEX_CHAT_TURN",
		},
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Ai: config.AIConfig{
			ChatModel:     "chat-model",
			AdvisoryModel: "advisory-model",
			VisionModel:   "vision-model",
			Temperature:   0.7,
			MaxTokens:     1024,
		},
		Weather: config.WeatherConfig{CacheTTL: time.Minute},
	}
}

func newTestApp(t *testing.T, provider llm.LLMProvider) *fiber.App {
	t.Helper()
	schemes, err := data.LoadSchemes("")
	require.NoError(t, err)

	container := bootstrap.Assemble(bootstrap.Dependencies{
		DB:                testdb.New(t),
		Config:            testConfig(),
		LLMProvider:       provider,
		EmbeddingProvider: stubEmbedder{},
		Schemes:           schemes,
	})
	t.Cleanup(container.Close)

	return server.New(testConfig(), container).GetApp()
}

func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Gurpreet",
		"email":    email,
		"password": "secret123",
		"location": "Ludhiana, Punjab",
		"language": "punjabi",
	})
	require.Equal(t, http.StatusCreated, status)
	return body["token"].(string)
}

func TestSignupLoginAndMe(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	token := signup(t, app, "Gurpreet@Example.com")

	status, body := do(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "gurpreet@example.com", user["email"])
	assert.Equal(t, "punjabi", user["language"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	status, body = do(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "gurpreet@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = do(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "gurpreet@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	signup(t, app, "asha@example.com")

	status, body := do(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Asha", "email": "ASHA@example.com", "password": "another",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered. Please login.", body["message"])
}

func TestSignupAcceptsPasswordsLongerThan72Bytes(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	password := strings.Repeat("é", 40)

	status, _ := do(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Meera", "email": "meera@example.com", "password": password,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "meera@example.com", "password": password,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestChatAcceptsLongMessages(t *testing.T) {
	provider := &scriptedLLM{answer: "ok"}
	app := newTestApp(t, provider)
	token := signup(t, app, "long@example.com")
	question := strings.Repeat("a", 5000)

	status, _ := do(t, app, http.MethodPost, "/api/chat", token, map[string]string{"message": question})
	require.Equal(t, http.StatusOK, status)
	messages := provider.lastCall()
	assert.Contains(t, messages[len(messages)-1].Content, question)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})

	status, body := do(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication required", body["message"])

	status, body = do(t, app, http.MethodPost, "/api/chat", "garbage", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestProfileUpdateAndCropHistory(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	token := signup(t, app, "kiran@example.com")

	status, body := do(t, app, http.MethodPut, "/api/auth/profile", token, map[string]interface{}{
		"location":    "Bathinda, Punjab",
		"crops":       []string{"Cotton", " ", "Wheat"},
		"farmDetails": map[string]string{"landSize": "4 acres", "farmingType": "Organic"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile updated!", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Cotton", "Wheat"}, user["crops"])

	status, body = do(t, app, http.MethodPost, "/api/auth/crop-history", token, map[string]interface{}{
		"cropName": "Cotton", "year": 2024,
	})
	require.Equal(t, http.StatusOK, status)
	history := body["history"].([]interface{})
	require.Len(t, history, 1)
	id := history[0].(map[string]interface{})["id"].(string)

	status, body = do(t, app, http.MethodDelete, "/api/auth/crop-history/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid record id", body["message"])

	status, body = do(t, app, http.MethodDelete, "/api/auth/crop-history/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Record removed", body["message"])
	assert.Empty(t, body["history"])
}

func TestFarmerRegisterIsIdempotentByPhone(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	req := map[string]interface{}{"name": "Ramesh", "phone": "9876543210", "language": "hi"}

	status, first := do(t, app, http.MethodPost, "/api/farmer/register", "", req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Registration successful", first["message"])

	status, second := do(t, app, http.MethodPost, "/api/farmer/register", "", req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Welcome back!", second["message"])
	assert.Equal(t, first["farmer_id"], second["farmer_id"])

	status, body := do(t, app, http.MethodPost, "/api/farmer/register", "", map[string]string{"name": "No Phone"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name and phone are required", body["message"])
}

func TestSchemesFilterByStateAndLimit(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/api/schemes?state=punjab&limit=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schemes []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schemes))
	require.Len(t, schemes, 2)
	assert.Equal(t, "Punjab Crop Residue Management Scheme", schemes[0]["name"])

	status, body := do(t, app, http.MethodGet, "/api/schemes?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "limit must be a positive integer", body["message"])
}

func TestChatKeepsTenTurnWindow(t *testing.T) {
	provider := &scriptedLLM{answer: "Sow wheat after the first week of November."}
	app := newTestApp(t, provider)
	token := signup(t, app, "window@example.com")

	status, body := do(t, app, http.MethodPost, "/api/chat", token, map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message is required", body["message"])

	for i := 0; i < 6; i++ {
		status, body = do(t, app, http.MethodPost, "/api/chat", token, map[string]string{"message": "When do I sow wheat?", "language": "punjabi"})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, provider.answer, body["response"])
		assert.EqualValues(t, 0, body["contexts_used"])
		assert.Nil(t, body["audio"])
	}

	// system + ten prior turns + the current question
	messages := provider.lastCall()
	require.Len(t, messages, 12)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "Punjabi")
	assert.Contains(t, messages[11].Content, "Ludhiana, Punjab")

	status, body = do(t, app, http.MethodGet, "/api/chat/history?limit=4", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["messages"], 4)
}

func TestChatProviderFailureReturnsApology(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{err: errors.New("upstream down")})
	token := signup(t, app, "down@example.com")

	status, body := do(t, app, http.MethodPost, "/api/chat", token, map[string]string{"message": "Hello"})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "AI service temporarily unavailable", body["message"])
	assert.Equal(t, "I'm having a technical issue. Please try again.", body["response"])

	status, body = do(t, app, http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["messages"])
}

func TestAnalyzeSoilRequiresImage(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})
	token := signup(t, app, "soil@example.com")

	status, body := do(t, app, http.MethodPost, "/api/analyze-soil", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No image uploaded", body["message"])
}

func TestWeatherRequiresCoordinates(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})

	status, body := do(t, app, http.MethodGet, "/api/weather?lat=30.9", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Latitude and Longitude required", body["message"])

	for _, query := range []string{"lat=north&lon=75.8", "lat=NaN&lon=75.8", "lat=30.9&lon=nan", "lat=91&lon=75.8", "lat=Inf&lon=75.8"} {
		status, body = do(t, app, http.MethodGet, "/api/weather?"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.Equal(t, "Latitude and Longitude must be valid coordinates", body["message"], query)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{answer: "ok"})

	status, body := do(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "ok"}, body["checks"])
}
