package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// Identity headers set by the gateway in front of this service. The service
// trusts them as given; authentication itself happens upstream.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorKey struct{}

// Auth extracts the acting identity from the gateway headers and stores it in
// the request context. Requests without a valid identity are rejected.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		switch role {
		case domain.RoleCustomer, domain.RoleStaff, domain.RoleAdmin:
		case "":
			role = domain.RoleCustomer
		default:
			handlers.RespondError(w, http.StatusUnauthorized, "unknown X-User-Role header")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey{}, domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the identity stored by Auth.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
