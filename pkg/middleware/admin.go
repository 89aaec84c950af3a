package middleware

import (
	"net/http"

	"resto-client/internal/data/entity"
	"resto-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserLookup resolves a user id to its record.
type UserLookup interface {
	FindUser(id string) (*entity.User, bool)
}

// AdminGuard rejects requests whose {adminId} path parameter does not
// belong to an admin user.
func AdminGuard(users UserLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := chi.URLParam(r, "adminId")

			user, ok := users.FindUser(adminID)
			if !ok {
				utils.ResponseNotFound(w, "Admin user not found")
				return
			}

			if !user.IsAdmin() {
				logger.Warn("Non-admin hit admin route",
					zap.String("user_id", adminID),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
