package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/store/application/user"
	"github.com/muhammadheryan/store/constant"
	utilsContext "github.com/muhammadheryan/store/utils/context"
	"github.com/muhammadheryan/store/utils/errors"
	"github.com/muhammadheryan/store/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware authenticates HTTP Basic credentials through UserApp and stores
// the resulting principal in the request context. Public paths skip it.
func AuthMiddleware(userApp user.UserApp, realm string) mux.MiddlewareFunc {
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", challenge)
				writeError(w, r, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			principal, err := userApp.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.IsType(err, constant.ErrUnauthorize) {
					logger.Warn("[AuthMiddleware] rejected credentials",
						zap.String("username", username),
						zap.String("path", r.URL.Path),
					)
					w.Header().Set("WWW-Authenticate", challenge)
				}
				writeError(w, r, err)
				return
			}

			ctx := utilsContext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles lets the request through only when the principal holds one of roles.
func RequireRoles(next http.HandlerFunc, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := utilsContext.GetPrincipal(r.Context())
		if !principal.HasAnyRole(roles...) {
			username := ""
			if principal != nil {
				username = principal.Username
			}
			logger.Warn("[RequireRoles] access denied",
				zap.String("username", username),
				zap.String("path", r.URL.Path),
				zap.Strings("required", roles),
			)
			writeError(w, r, errors.SetCustomError(constant.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	return path == "/health"
}
