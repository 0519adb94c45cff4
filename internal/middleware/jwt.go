package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

// NewKeyfunc returns the token verification function. With a JWKS URL set the
// tokens are verified against the identity provider's published keys;
// otherwise the shared HS256 secret is used.
func NewKeyfunc(jwtSecret, jwksURL string) (jwt.Keyfunc, error) {
	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshErrorHandler: func(err error) {
				log.Printf("WARN: JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
		}
		return jwks.Keyfunc, nil
	}
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	}, nil
}

// JWTMiddleware validates the bearer token and loads the caller's identity
// claims into the request context.
func JWTMiddleware(keyFn jwt.Keyfunc) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			token, err := jwt.Parse(auth, keyFn)
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, fmt.Errorf("invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return nil, fmt.Errorf("invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return nil, fmt.Errorf("missing subject in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return nil, fmt.Errorf("invalid subject format: %w", err)
			}

			role := models.RoleUser
			if roleStr, ok := claims["role"].(string); ok {
				role = models.ParseRole(roleStr)
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, role)

			// An absent or empty company claim means a company-agnostic
			// administrative account; no CompanyIDKey is set for those.
			if companyStr, ok := claims["company_id"].(string); ok && companyStr != "" {
				companyID, err := uuid.Parse(companyStr)
				if err != nil {
					return nil, fmt.Errorf("invalid company claim: %w", err)
				}
				ctx = context.WithValue(ctx, common.CompanyIDKey, companyID)
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return token, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}
