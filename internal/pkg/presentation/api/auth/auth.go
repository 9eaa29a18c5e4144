package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
)

type accessContextKey struct{ name string }

var accessCtxKey = &accessContextKey{"access"}

var tracer = otel.Tracer("iot-climate-control/authz")

type Scope string

const (
	ScopeRead    Scope = "climate.read"
	ScopeControl Scope = "climate.control"
)

// AllWarehouses is the access map key that grants its scopes in every warehouse.
const AllWarehouses string = "*"

var ErrForbidden = errors.New("forbidden")

type Enticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type accessMap map[string]map[Scope]struct{}

type impl struct {
	query rego.PreparedEvalQuery
}

func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {
	validateScopes := make([]string, 0, len(scopes))
	for _, s := range scopes {
		validateScopes = append(validateScopes, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			ctx, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			logger := logging.GetFromContext(ctx)

			token := r.Header.Get("Authorization")
			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info().Msg(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"token":  token[7:],
				"scopes": validateScopes,
			}

			results, err := a.query.Eval(ctx, rego.EvalInput(input))
			if err != nil {
				logger.Error().Err(err).Msg("opa eval failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error().Err(err).Msg("auth failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			access, err := parseAccess(results[0].Bindings["x"])
			if err != nil {
				if errors.Is(err, ErrForbidden) {
					logger.Warn().Msg("authorization failed")
					http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
					return
				}
				logger.Error().Err(err).Msg("opa error")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccess(r.Context(), access)))
		})
	}
}

// parseAccess converts the policy result into an access map. A failed authorization
// is reported by the policy as a single false.
func parseAccess(binding any) (accessMap, error) {
	if allowed, ok := binding.(bool); ok && !allowed {
		return nil, ErrForbidden
	}

	result, ok := binding.(map[string]any)
	if !ok {
		return nil, errors.New("unexpected result type")
	}

	access, ok := result["access"].(map[string]any)
	if !ok {
		return nil, errors.New("bad response from authz policy engine")
	}

	accessObj := accessMap{}

	for warehouse, anyScopes := range access {
		scopes, ok := anyScopes.([]any)
		if !ok {
			return nil, fmt.Errorf("scopes of warehouse %s has unexpected type", warehouse)
		}

		accessObj[warehouse] = map[Scope]struct{}{}

		for _, s := range scopes {
			scope, ok := s.(string)
			if !ok {
				return nil, fmt.Errorf("scope of warehouse %s has unexpected type", warehouse)
			}
			accessObj[warehouse][Scope(scope)] = struct{}{}
		}
	}

	if len(accessObj) == 0 {
		return nil, ErrForbidden
	}

	return accessObj, nil
}

func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %w", err)
	}

	query, err := rego.New(
		rego.Query("x = data.example.authz.allow"),
		rego.Module("example.rego", string(module)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

// Allowed reports whether the caller has been granted every scope in the warehouse.
// Requests that never passed an authenticator are allowed.
func Allowed(ctx context.Context, warehouseID string, scopes ...Scope) bool {
	access, ok := ctx.Value(accessCtxKey).(accessMap)
	if !ok {
		return true
	}

	return hasScopes(access[warehouseID], scopes) || hasScopes(access[AllWarehouses], scopes)
}

func hasScopes(granted map[Scope]struct{}, scopes []Scope) bool {
	if granted == nil {
		return false
	}

	for _, s := range scopes {
		if _, ok := granted[s]; !ok {
			return false
		}
	}

	return true
}

func WithAccess(ctx context.Context, access accessMap) context.Context {
	return context.WithValue(ctx, accessCtxKey, access)
}

// WithWarehouseAccess grants the scopes in the given warehouses.
func WithWarehouseAccess(ctx context.Context, scopes []Scope, warehouses ...string) context.Context {
	access := accessMap{}
	for _, w := range warehouses {
		access[w] = map[Scope]struct{}{}
		for _, s := range scopes {
			access[w][s] = struct{}{}
		}
	}
	return WithAccess(ctx, access)
}
