package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(issuer *token.Issuer) *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtMiddleware(issuer), func(ctx *fiber.Ctx) error {
		userID, ok := UserID(ctx)
		if !ok {
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
		return ctx.SendString(userID.String())
	})
	return app
}

func readMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload["message"]
}

func TestJwtMiddleware(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	app := newProtectedApp(issuer)
	userID := uuid.New()
	valid, err := issuer.Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: 401, wantBody: "Authentication required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: 401, wantBody: "Authentication required"},
		{name: "empty bearer", header: "Bearer ", wantStatus: 401, wantBody: "Authentication required"},
		{name: "bad token", header: "Bearer nope", wantStatus: 401, wantBody: "Invalid or expired token"},
		{name: "valid", header: "Bearer " + valid, wantStatus: 200, wantBody: userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == 200 {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			} else {
				assert.Equal(t, tt.wantBody, readMessage(t, resp.Body))
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("x"), 400},
		{apperror.Conflict("x"), 400},
		{apperror.Unauthorized("x"), 401},
		{apperror.NotFound("x"), 404},
		{apperror.Unavailable("x", nil), 503},
		{errors.New("raw"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorStatus(tt.err))
	}
}

func TestErrorMessageHidesInternalCause(t *testing.T) {
	assert.Equal(t, "Server error", ErrorMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "User not found", ErrorMessage(apperror.NotFound("User not found")))
}

type sampleRequest struct {
	Name        string `validate:"required"`
	FarmingType string `validate:"omitempty,oneof=Conventional Organic Mix"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "Ravi"}))

	err := ValidateRequest(&sampleRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "name is required", ErrorMessage(err))

	err = ValidateRequest(&sampleRequest{Name: "Ravi", FarmingType: "Hydro"})
	assert.Equal(t, "farmingType must be one of: Conventional Organic Mix", ErrorMessage(err))
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware})
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad body") })
	app.Get("/app", func(ctx *fiber.Ctx) error { return apperror.NotFound("gone") })
	app.Get("/raw", func(ctx *fiber.Ctx) error { return errors.New("secret detail") })

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/fiber", 400, "bad body"},
		{"/app", 404, "gone"},
		{"/raw", 500, "Server error"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.wantStatus, resp.StatusCode)
		assert.Equal(t, tt.wantBody, readMessage(t, resp.Body))
	}
}
