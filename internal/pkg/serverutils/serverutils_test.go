package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"edumate-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("thing not found")

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandlerMiddleware(logger.NewNopLogger(), ErrorStatus{Err: errSentinel, Code: fiber.StatusNotFound}),
	})
	return app
}

func decode(t *testing.T, body io.Reader) BaseResponse[any] {
	t.Helper()
	var out BaseResponse[any]
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandler_Mapping(t *testing.T) {
	app := newTestApp()
	app.Get("/app", func(c *fiber.Ctx) error { return NewAppError(fiber.StatusConflict, "taken") })
	app.Get("/sentinel", func(c *fiber.Ctx) error { return errors.Join(errSentinel) })
	app.Get("/wrapped", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/app", fiber.StatusConflict, "taken"},
		{"/sentinel", fiber.StatusNotFound, "thing not found"},
		{"/wrapped", fiber.StatusInternalServerError, "Internal server error"},
		{"/missing", fiber.StatusNotFound, "Cannot GET /missing"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	assert.NoError(t, ValidateRequest(req{Email: "a@b.co", Password: "secret1"}))

	err := ValidateRequest(req{Email: "nope", Password: "123"})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "email must be a valid email")
	assert.Contains(t, appErr.Message, "password must be at least 6 characters")
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	userID := uuid.New()

	app := newTestApp()
	app.Get("/me", JwtMiddleware(secret), func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.JSON(SuccessResponse("me", fiber.Map{"id": id.String(), "email": Email(c)}))
	})

	token, err := IssueToken(secret, userID, "learner@edumate.dev", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp.Body)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, userID.String(), data["id"])
	assert.Equal(t, "learner@edumate.dev", data["email"])

	resp, err = app.Test(httptest.NewRequest("GET", "/me?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	bad, err := IssueToken("other-secret", userID, "", time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	expired, err := IssueToken(secret, userID, "", -time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
