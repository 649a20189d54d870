package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/teastore-backend/internal/permissions"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"golang.org/x/text/language"
)

type stubResolver struct {
	principal *permissions.Principal
	calls     int
}

func (s *stubResolver) Resolve(ctx context.Context, userID uuid.UUID) (*permissions.Principal, error) {
	s.calls++
	if s.principal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
	}
	p := *s.principal
	p.UserID = userID
	return &p, nil
}

type countingDenials struct{ seen []string }

func (c *countingDenials) IncDenied(permission string) { c.seen = append(c.seen, permission) }

func gateRequest(method string, ctx context.Context) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/teas/", nil)
	return req.WithContext(WithUserID(ctx, uuid.NewString()))
}

func TestRequirePermissionAdmitsHolder(t *testing.T) {
	resolver := &stubResolver{principal: &permissions.Principal{IsActive: true, Codenames: []string{"view_tea"}}}
	var seen permissions.Principal
	handler := RequirePermission(resolver, permissions.EntityTea, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		seen = p
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, gateRequest(http.MethodGet, context.Background()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.Has("view_tea"))
}

func TestRequirePermissionDeniesMissingCodename(t *testing.T) {
	resolver := &stubResolver{principal: &permissions.Principal{IsActive: true, Codenames: []string{"view_tea"}}}
	denials := &countingDenials{}
	called := false
	handler := RequirePermission(resolver, permissions.EntityTea, denials, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, gateRequest(method, context.Background()))
		assert.Equal(t, http.StatusForbidden, rec.Code, method)
	}
	assert.False(t, called)
	assert.Equal(t, []string{"add_tea", "change_tea", "change_tea", "delete_tea"}, denials.seen)
}

func TestRequirePermissionLocalisesDenial(t *testing.T) {
	resolver := &stubResolver{principal: &permissions.Principal{IsActive: true}}
	handler := RequirePermission(resolver, permissions.EntityOrder, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tr := i18n.New("en")
	ctx := i18n.WithPrinter(context.Background(), tr.Printer(language.Polish))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, gateRequest(http.MethodPost, ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brak uprawnień do tej operacji.")
}

func TestRequirePermissionRejectsUnmappedMethod(t *testing.T) {
	resolver := &stubResolver{principal: &permissions.Principal{IsActive: true, IsSuperuser: true}}
	handler := RequirePermission(resolver, permissions.EntityTea, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, method := range []string{http.MethodOptions, http.MethodHead} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, gateRequest(method, context.Background()))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
	assert.Zero(t, resolver.calls)
}

func TestRequirePermissionSuperuserAndInactive(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	super := &stubResolver{principal: &permissions.Principal{IsActive: true, IsSuperuser: true}}
	rec := httptest.NewRecorder()
	RequirePermission(super, permissions.EntityOrigin, nil, nil)(next).ServeHTTP(rec, gateRequest(http.MethodDelete, context.Background()))
	assert.Equal(t, http.StatusOK, rec.Code)

	inactive := &stubResolver{principal: &permissions.Principal{IsActive: false, IsSuperuser: true, Codenames: []string{"view_origin"}}}
	rec = httptest.NewRecorder()
	RequirePermission(inactive, permissions.EntityOrigin, nil, nil)(next).ServeHTTP(rec, gateRequest(http.MethodGet, context.Background()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	handler := RequirePermission(&stubResolver{}, permissions.EntityTea, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/teas/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLanguageNegotiatesPrinter(t *testing.T) {
	tr := i18n.New("en")
	var got string
	handler := Language(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.T(r.Context(), i18n.MsgForbidden)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "Brak uprawnień do tej operacji.", got)
	assert.Equal(t, "pl", rec.Header().Get("Content-Language"))
}
