package serverutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const localsUserID = "user_id"
const localsEmail = "email"

// IssueToken signs an HS256 access token for the user.
func IssueToken(secret string, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JwtMiddleware verifies the bearer token and stores user_id and email in
// Locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		tokenStr := ""
		if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		} else if websocketToken := ctx.Query("token"); websocketToken != "" {
			// Browsers cannot set headers on a websocket upgrade.
			tokenStr = websocketToken
		}
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		ctx.Locals(localsUserID, claims["user_id"])
		ctx.Locals(localsEmail, claims["email"])
		return ctx.Next()
	}
}

var ErrNoUser = errors.New("no authenticated user")

// UserID reads the id stored by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(localsUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, NewAppError(fiber.StatusUnauthorized, ErrNoUser.Error())
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewAppError(fiber.StatusUnauthorized, "Invalid user ID")
	}
	return id, nil
}

// Email reads the email claim stored by JwtMiddleware.
func Email(ctx *fiber.Ctx) string {
	email, _ := ctx.Locals(localsEmail).(string)
	return email
}
