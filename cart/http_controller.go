// Package cart exposes the shopping cart service. Every cart operation acts
// on the authenticated account's own lines; admins get a read-only view
// across every cart.
package cart

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	storefront "github.com/goliatone/go-storefront"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController handles cart HTTP routes.
type HTTPController struct {
	repo   storefront.RepositoryManager
	logger storefront.Logger
	config HTTPConfig
}

// HTTPConfig configures the HTTP controller.
type HTTPConfig struct {
	// ContextKey is the router locals key the guard stores claims under (default: "user")
	ContextKey string
}

// NewHTTPController creates a new cart controller.
func NewHTTPController(repo storefront.RepositoryManager, cfg HTTPConfig) *HTTPController {
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	return &HTTPController{
		repo:   repo,
		logger: storefront.DefaultLogger("cart"),
		config: cfg,
	}
}

// WithLogger sets the controller logger.
func (c *HTTPController) WithLogger(logger storefront.Logger) *HTTPController {
	c.logger = logger
	return c
}

// RegisterRoutes registers cart routes. All routes sit behind the
// authenticated middleware; the cross-owner listing additionally requires
// adminOnly.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar, authenticated, adminOnly router.MiddlewareFunc) {
	group.Get("/cart", c.Index, authenticated)
	group.Post("/cart/items", c.AddItem, authenticated)
	group.Put("/cart/items/:id", c.UpdateQuantity, authenticated)
	group.Delete("/cart/items/:id", c.Remove, authenticated)
	group.Get("/carts", c.AdminIndex, authenticated, adminOnly)
}

// AddItemPayload carries an add-to-cart request. Quantity is merged into any
// existing line for the same product, so it is taken as given here.
type AddItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Validate the payload fields.
func (p AddItemPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.ProductID, validation.Required, validation.Min(int64(1))),
		)
	}, "Invalid cart item payload")
}

// QuantityPayload carries a replace-quantity request.
type QuantityPayload struct {
	Quantity int `json:"quantity"`
}

// Index lists the caller's cart lines.
func (c *HTTPController) Index(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	lines, err := c.repo.CartLines().ListByOwner(ctx.Context(), principal.ID)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, lines)
}

// AddItem puts a product into the caller's cart, merging quantities when a
// line for the product already exists.
func (c *HTTPController) AddItem(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := AddItemPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse cart item payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	line, err := c.repo.CartLines().AddItem(ctx.Context(), principal.ID, payload.ProductID, payload.Quantity)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, line)
}

// UpdateQuantity replaces the quantity on one of the caller's lines. The
// storage layer rejects quantities below one for every caller.
func (c *HTTPController) UpdateQuantity(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := QuantityPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse quantity payload").
			WithCode(goerrors.CodeBadRequest))
	}

	line, err := c.repo.CartLines().UpdateQuantity(ctx.Context(), id, principal.ID, payload.Quantity)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, line)
}

// Remove deletes one of the caller's lines.
func (c *HTTPController) Remove(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if err := c.repo.CartLines().Remove(ctx.Context(), id, principal.ID); err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "removed",
	})
}

// AdminIndex lists every cart line across owners.
func (c *HTTPController) AdminIndex(ctx router.Context) error {
	lines, err := c.repo.CartLines().List(ctx.Context())
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, lines)
}
