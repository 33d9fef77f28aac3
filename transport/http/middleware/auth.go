package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"hotelledger/config"
	"hotelledger/infras/jwt"
	"hotelledger/infras/otel"
	"hotelledger/permissions"
	"hotelledger/shared/constant"
	"hotelledger/shared/failure"
	"hotelledger/shared/logger"
	"hotelledger/shared/session"
	"hotelledger/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// internalCallerKey marks requests authenticated by the shared API key.
type internalCallerKey struct{}

const internalUserID = "internal"

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	apiKey     []byte
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		apiKey:     []byte(cfg.App.APIKey),
	}
}

func isInternalCaller(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallerKey{}).(bool)

	return internal
}

// routePermission resolves the chi pattern of the request so permissions are keyed by
// route, not by concrete path.
func (m *authRoleImpl) routePermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return pattern, m.permission.FindPermissions(pattern, request.Method)
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()
	response.WithError(writer, err)
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrMissingToken), errors.Is(err, jwt.ErrBearerScheme):
		return failure.Unauthorized(err.Error())
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Invalid token")
	}
}

// Auth validates the bearer token and stores the operator session in the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		pattern, permission := m.routePermission(request)
		if isInternalCaller(ctx) || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.route":      pattern,
			"http.method":     request.Method,
		})

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			reject(writer, scope, tokenFailure(err))

			return
		}

		claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("route", pattern).Msg("rejected bearer token")
			reject(writer, scope, tokenFailure(err))

			return
		}

		scope.SetAttribute("token.id", claims.TokenID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(session.WithSession(ctx, claims.Session())))
	})
}

// RBAC checks the session role against the roles allowed on the route. It runs after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if isInternalCaller(ctx) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		_, permission := m.routePermission(request)
		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		role := session.FromContext(ctx).Role
		if !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal services call the API without a user token. A request carrying a
// wrong key is refused outright instead of falling back to bearer auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if len(m.apiKey) == 0 || subtle.ConstantTimeCompare([]byte(key), m.apiKey) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, internalCallerKey{}, true)
		ctx = session.WithSession(ctx, session.Session{UserID: internalUserID, Role: constant.RoleSuperAdmin})

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
