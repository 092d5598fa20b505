package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const APIKeyHeader = "X-API-Key"

// OperatorGuard protects the operations that only make sense for an operator:
// blocking, unblocking and changing the credit limit.
type OperatorGuard struct {
	keyHash []byte
	logger  *zap.Logger
}

func NewOperatorGuard(apiKey string, logger *zap.Logger) (*OperatorGuard, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("operator API key is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash operator API key: %w", err)
	}
	return &OperatorGuard{keyHash: hash, logger: logger}, nil
}

func (g *OperatorGuard) Validate(apiKey string) bool {
	if apiKey == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.keyHash, []byte(apiKey)) == nil
}

func (g *OperatorGuard) RequireAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get(APIKeyHeader)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing API key",
			})
		}

		if !g.Validate(apiKey) {
			g.logger.Warn("invalid operator API key",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid API key",
			})
		}

		return c.Next()
	}
}
