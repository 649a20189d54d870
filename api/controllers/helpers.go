package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/api/middleware"
	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

// tokenHeader mirrors the freshly minted access token for clients that do not
// read the body.
const tokenHeader = "X-TS-Token"

// pathID parses the {id} route param. A malformed id cannot name a row, so it
// answers 404 like any other unknown id.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound)
	}
	return id, nil
}

func principalFrom(r *http.Request) (permissions.Principal, error) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return permissions.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, i18n.MsgAuthRequired)
	}
	return p, nil
}

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
