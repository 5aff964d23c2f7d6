package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/service"
)

const userPrefix = apiPrefix + "/user"

// UserHandler endpoints that require a verified caller.
type UserHandler struct {
	users        service.UserService
	auth         *AuthResolver
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewUserHandler(users service.UserService, resolver *AuthResolver, maxBodyBytes int64, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, auth: resolver, maxBodyBytes: maxBodyBytes, logger: logger}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == userPrefix+"/profile" && r.Method == http.MethodGet:
		h.auth.Required(h.GetProfile)(w, r)
	case r.URL.Path == userPrefix+"/designs" && r.Method == http.MethodGet:
		h.auth.Required(h.ListDesigns)(w, r)
	case r.URL.Path == userPrefix+"/designs" && r.Method == http.MethodPost:
		h.auth.Required(h.CreateDesign)(w, r)
	case r.URL.Path == userPrefix+"/profile", r.URL.Path == userPrefix+"/designs":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	resp, err := h.users.GetProfile(r.Context(), claims)
	if err != nil {
		writeServiceError(w, h.logger, "Loading profile", err, zap.String("subject", claims.Subject))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *UserHandler) ListDesigns(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	resp, err := h.users.ListDesigns(r.Context(), claims)
	if err != nil {
		writeServiceError(w, h.logger, "Listing designs", err, zap.String("subject", claims.Subject))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *UserHandler) CreateDesign(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	var body service.CreateDesignRequest
	if err := readBodyJSON(r, h.maxBodyBytes, &body); err != nil {
		writeBadRequest(w, err)
		return
	}
	resp, err := h.users.CreateDesign(r.Context(), claims, body)
	if err != nil {
		writeServiceError(w, h.logger, "Creating design", err,
			zap.String("subject", claims.Subject),
			zap.String("placement_id", body.PlacementID),
		)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(resp))
}
