package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sheelganvir/lastnote/internal/models"
)

const contextSubjectKey = "auth_subject"

// AuthRequired verifies the identity provider's bearer token and
// stashes its subject id. Resolving the subject to a User record is
// left to the handlers, since first-time sync runs before a User
// exists.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	subject, err := handler.authenticateSubject(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	c.Locals(contextSubjectKey, subject)
	return c.Next()
}

func (handler *Handler) authenticateSubject(c *fiber.Ctx) (string, error) {
	raw := bearerToken(c)
	if raw == "" {
		return "", errors.New("missing bearer token")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return handler.authSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token missing subject")
	}
	return subject, nil
}

func currentSubject(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(contextSubjectKey).(string)
	return subject, ok && subject != ""
}

// currentUser resolves the authenticated subject to the internal User
// record.
func (handler *Handler) currentUser(c *fiber.Ctx) (models.User, bool, error) {
	subject, ok := currentSubject(c)
	if !ok {
		return models.User{}, false, errors.New("no authenticated subject")
	}
	return handler.repositories.Users.FindBySubjectID(subject)
}
