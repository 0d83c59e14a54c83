// Package users exposes the account service: registration, login, the
// current-account endpoint, and administrative account management.
package users

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	storefront "github.com/goliatone/go-storefront"
	"github.com/nyaruka/phonenumbers"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController handles account HTTP routes.
type HTTPController struct {
	auther *storefront.Auther
	repo   storefront.RepositoryManager
	logger storefront.Logger
	config HTTPConfig
}

// HTTPConfig configures the HTTP controller.
type HTTPConfig struct {
	// ContextKey is the router locals key the guard stores claims under (default: "user")
	ContextKey string
}

// NewHTTPController creates a new account controller.
func NewHTTPController(auther *storefront.Auther, repo storefront.RepositoryManager, cfg HTTPConfig) *HTTPController {
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	return &HTTPController{
		auther: auther,
		repo:   repo,
		logger: storefront.DefaultLogger("users"),
		config: cfg,
	}
}

// WithLogger sets the controller logger.
func (c *HTTPController) WithLogger(logger storefront.Logger) *HTTPController {
	c.logger = logger
	return c
}

// RegisterRoutes registers account routes. The authenticated middleware
// protects the current-account endpoint, adminOnly protects management.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar, authenticated, adminOnly router.MiddlewareFunc) {
	group.Post("/registration", c.Register)
	group.Post("/login", c.Login)
	group.Get("/me", c.Me, authenticated)
	group.Get("/users", c.Index, adminOnly)
	group.Get("/users/:id", c.Show, adminOnly)
	group.Put("/users/:id", c.Update, adminOnly)
	group.Delete("/users/:id", c.Delete, adminOnly)
}

// RegistrationPayload carries a self-service signup request. Accounts created
// this way always start with the user role.
type RegistrationPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate the payload fields.
func (p RegistrationPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.Required, validation.Length(1, 120)),
			validation.Field(&p.Email, validation.Required, is.Email),
			validation.Field(&p.Phone, validation.By(validPhone)),
			validation.Field(&p.Password, validation.Required, validation.Length(8, 72)),
		)
	}, "Invalid registration payload")
}

// Register creates a new account.
func (c *HTTPController) Register(ctx router.Context) error {
	payload := RegistrationPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse registration payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	hash, err := storefront.HashPassword(payload.Password)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	user, err := c.repo.Users().Create(ctx.Context(), &storefront.User{
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		PasswordHash: hash,
		Role:         storefront.RoleUser,
	})
	if err != nil {
		c.logger.Error("registration failed: %v", err)
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, user)
}

// LoginPayload carries a credential exchange request.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate the payload fields.
func (p LoginPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Email, validation.Required, is.Email),
			validation.Field(&p.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// Login exchanges credentials for a bearer token.
func (c *HTTPController) Login(ctx router.Context) error {
	payload := LoginPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse login payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	token, err := c.auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"token": token,
	})
}

// Me returns the account behind the presented token.
func (c *HTTPController) Me(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	user, err := c.repo.Users().GetByID(ctx.Context(), principal.ID)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// Index lists every account.
func (c *HTTPController) Index(ctx router.Context) error {
	records, err := c.repo.Users().List(ctx.Context())
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Show returns a single account.
func (c *HTTPController) Show(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	user, err := c.repo.Users().GetByID(ctx.Context(), id)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// UserPatchPayload carries an administrative partial update. Absent fields
// stay untouched.
type UserPatchPayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// Validate checks only the fields that are present.
func (p UserPatchPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 120)),
			validation.Field(&p.Email, validation.NilOrNotEmpty, is.Email),
			validation.Field(&p.Phone, validation.By(validOptionalPhone)),
			validation.Field(&p.Role, validation.By(validOptionalRole)),
			validation.Field(&p.Password, validation.NilOrNotEmpty, validation.Length(8, 72)),
		)
	}, "Invalid user patch payload")
}

// Patch converts the payload into the storage patch.
func (p UserPatchPayload) Patch() storefront.UserPatch {
	patch := storefront.UserPatch{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Password: p.Password,
	}

	if p.Role != nil {
		role := storefront.UserRole(*p.Role)
		patch.Role = &role
	}

	return patch
}

// Update applies a partial update to an account.
func (c *HTTPController) Update(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := UserPatchPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse user patch payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	user, err := c.repo.Users().Patch(ctx.Context(), id, payload.Patch())
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, user)
}

// Delete removes an account.
func (c *HTTPController) Delete(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if err := c.repo.Users().Delete(ctx.Context(), id); err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}

func validPhone(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	return checkPhone(raw)
}

func validOptionalPhone(value any) error {
	raw, ok := value.(*string)
	if !ok || raw == nil || *raw == "" {
		return nil
	}

	return checkPhone(*raw)
}

func checkPhone(raw string) error {
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return validation.NewError("validation_phone", "must be a valid phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return validation.NewError("validation_phone", "must be a valid phone number")
	}

	return nil
}

func validOptionalRole(value any) error {
	raw, ok := value.(*string)
	if !ok || raw == nil {
		return nil
	}

	if !storefront.UserRole(*raw).IsValid() {
		return validation.NewError("validation_role", "must be a known role")
	}

	return nil
}
