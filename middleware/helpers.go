package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const jwtClaimSubject = "sub"

// GetSubjectFromContext returns the "sub" claim of the authenticated caller.
func GetSubjectFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	sub, ok := claims[jwtClaimSubject]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSubject)
	}
	switch v := sub.(type) {
	case string:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return "", fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimSubject, v)
		}
		return fmt.Sprintf("%d", int64(v)), nil
	default:
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimSubject, sub)
	}
}
