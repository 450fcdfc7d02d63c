package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// HeaderUserID identifica al usuario cuando no hay JWT configurado.
const HeaderUserID = "X-User-ID"

// AuthMiddleware resuelve el usuario que opera y lo deja en c.Locals.
// Con jwtSecret valida el Bearer Token (y el emisor si issuer no está vacío);
// sin secreto confía en la cabecera X-User-ID.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	if jwtSecret == "" {
		return trustedUserMiddleware
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		userID, role, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func trustedUserMiddleware(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(HeaderUserID))
	if userID == "" {
		return unauthorized(c, "MISSING_USER", "cabecera "+HeaderUserID+" requerida")
	}
	c.Locals(LocalUserID, userID)
	return c.Next()
}

// RequireRole restringe la ruta a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return respondError(c, fmt.Errorf("%w: rol %s sin permiso para esta operación", domain.ErrForbidden, role))
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, detail string) error {
	return respondErrorCode(c, fmt.Errorf("%w: %s", domain.ErrUnauthorized, detail), code)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto; vacío en modo X-User-ID.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
