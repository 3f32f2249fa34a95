package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
)

const (
	ctxSubject = "sub"
	ctxRole    = "role"
)

// Claims токен внешнего провайдера идентификации: sub - ID пользователя, role - его роль
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier проверяет HS256 токены
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if claims.Role != RoleCustomer && claims.Role != RoleBarber {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return claims, nil
}

// JWTAuth требует Bearer токен и кладёт sub и role в контекст запроса
func JWTAuth(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}

		c.Set(ctxSubject, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole пропускает только пользователей с одной из ролей
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[role(c)]; !ok {
			abortWithError(c, http.StatusForbidden, codeForbidden, "role is not allowed")
			return
		}
		c.Next()
	}
}

func subject(c *gin.Context) string {
	return c.GetString(ctxSubject)
}

func role(c *gin.Context) string {
	return c.GetString(ctxRole)
}
