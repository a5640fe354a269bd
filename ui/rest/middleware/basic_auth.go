package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// BasicAuth builds the basicauth middleware from user:secret pairs.
func BasicAuth(credentials []string) (fiber.Handler, error) {
	if len(credentials) == 0 {
		return nil, errors.New("no basic auth credentials configured")
	}

	users := make(map[string]string, len(credentials))
	for _, credential := range credentials {
		user, secret, ok := strings.Cut(credential, ":")
		if !ok || user == "" || secret == "" {
			return nil, fmt.Errorf("basic auth credential %q is not valid, expected <user>:<secret>", user)
		}
		users[user] = secret
	}

	return basicauth.New(basicauth.Config{
		Users: users,
		Next: func(c *fiber.Ctx) bool {
			// Allow CORS preflight without credentials.
			return c.Method() == fiber.MethodOptions
		},
	}), nil
}
