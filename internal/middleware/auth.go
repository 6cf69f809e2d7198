package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextBarberID = "barberID"
)

// Claims do token de acesso. BarberID só existe para barbeiros.
type Claims struct {
	Role     string `json:"role"`
	BarberID uint   `json:"barber_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken assina o token HS256 do usuário.
func IssueToken(secret string, ttl time.Duration, user *models.User, barberID uint, now time.Time) (string, error) {
	claims := Claims{
		Role:     user.Role,
		BarberID: barberID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   jwtSubject(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		userID, ok := parseSubject(claims.Subject)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextBarberID, claims.BarberID)

		c.Next()
	}
}

// RequireRole barra quem não tem um dos papéis.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Write(c, http.StatusForbidden, "forbidden", "Você não tem permissão para esta ação.")
		c.Abort()
	}
}

// Actor monta o ator da requisição a partir do contexto autenticado.
func Actor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:   c.GetUint(ContextUserID),
		Role:     c.GetString(ContextUserRole),
		BarberID: c.GetUint(ContextBarberID),
	}
}
