package middlewares

import (
	"strings"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/interfaces"
	"certschool.io/infrastructure/auth"
)

// UserAuthenticationMiddleware resolves the learner from a Bearer token and
// stores their id under "UserID".
func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authorization string) (*interfaces.ApplicationContext[any], bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		apperrors.AuthenticationError(ctx.Ctx, "sign in to continue")
		return nil, false
	}
	claims, err := auth.DecodeAuthToken(strings.TrimSpace(token))
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "your session has expired, sign in again")
		return nil, false
	}
	ctx.SetContextData("UserID", claims.UserID)
	if claims.Email != nil {
		ctx.SetContextData("Email", *claims.Email)
	}
	return ctx, true
}
