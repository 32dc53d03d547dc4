package subdl

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CheckToken inspects the upload token's exp claim without verifying its
// signature. It lets a run fail before any item is processed instead of
// halting mid-run on the first upload.
func CheckToken(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("parse upload token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("read upload token expiry: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return fmt.Errorf("%w: expired %s", ErrTokenExpired, exp.Format(time.RFC3339))
	}
	return nil
}
