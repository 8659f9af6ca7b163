package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/configurator"
	"github.com/nextpizza/storefront/internal/logging"
	"github.com/nextpizza/storefront/internal/services"
)

type configuratorActionRequest struct {
	Selection *configurator.Selection `json:"selection"`
	Action    configurator.Action     `json:"action"`
}

type addToCartRequest struct {
	CartID    int64                   `json:"cartId" validate:"gt=0"`
	Selection *configurator.Selection `json:"selection"`
}

type cartItemResponse struct {
	ID            int64   `json:"id"`
	CartID        int64   `json:"cartId"`
	ItemID        int64   `json:"itemId"`
	IngredientIDs []int64 `json:"ingredientIds"`
}

// GetConfigurator opens the configurator of a product with the default selection.
// Products sold in a single option get a view with just their item and price.
func (h *Handlers) GetConfigurator(w http.ResponseWriter, r *http.Request) {
	menu, ok := h.loadMenu(w, r)
	if !ok {
		return
	}

	if option, ok := menu.SingleOption(); ok {
		h.writeJSON(w, r, http.StatusOK, configurator.SingleOptionView(menu.Product, option))
		return
	}

	c := configurator.New(menu.Options, menu.Ingredients, configurator.DefaultSelection())
	h.writeJSON(w, r, http.StatusOK, c.View(menu.Product))
}

// ApplyConfiguratorAction applies one interaction to the selection carried by the client.
func (h *Handlers) ApplyConfiguratorAction(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	var req configuratorActionRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		logger.Warn("rejected configurator action", "error", err)
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	menu, ok := h.loadMenu(w, r)
	if !ok {
		return
	}
	if _, single := menu.SingleOption(); single {
		h.writeError(w, r, http.StatusConflict, "product is not configurable")
		return
	}

	var c *configurator.Configurator
	if req.Selection == nil {
		c = configurator.New(menu.Options, menu.Ingredients, configurator.DefaultSelection())
	} else {
		c = configurator.Restore(menu.Options, menu.Ingredients, *req.Selection)
	}
	if err := c.Apply(req.Action); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, c.View(menu.Product))
}

// AddToCart stores the item resolved from the selection in the cart.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	ctx := logging.With(r.Context(), h.logger, "product_id", productID)
	logger := h.loggerFromContext(ctx)

	var req addToCartRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		logger.Warn("rejected add to cart request", "error", err)
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.checkout.AddToCart(ctx, services.AddToCartInput{
		CartID:    req.CartID,
		ProductID: productID,
		Selection: req.Selection,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelectionRequired):
			h.writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, configurator.ErrNoPurchasableItem):
			h.writeError(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, catalog.ErrProductNotFound):
			h.writeError(w, r, http.StatusNotFound, "product not found")
		default:
			logger.Error("failed to add item to cart", "error", err)
			h.writeError(w, r, http.StatusInternalServerError, "failed to add item to cart")
		}
		return
	}

	ingredientIDs := item.IngredientIDs
	if ingredientIDs == nil {
		ingredientIDs = []int64{}
	}
	h.writeJSON(w, r, http.StatusCreated, cartItemResponse{
		ID:            item.ID,
		CartID:        item.CartID,
		ItemID:        item.ItemID,
		IngredientIDs: ingredientIDs,
	})
}

func (h *Handlers) loadMenu(w http.ResponseWriter, r *http.Request) (*catalog.Menu, bool) {
	productID, ok := h.productID(w, r)
	if !ok {
		return nil, false
	}

	menu, err := h.menus.GetMenu(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.writeError(w, r, http.StatusNotFound, "product not found")
			return nil, false
		}
		h.loggerFromContext(r.Context()).Error("failed to load menu", "error", err, "product_id", productID)
		h.writeError(w, r, http.StatusInternalServerError, "failed to load menu")
		return nil, false
	}
	return menu, true
}

func (h *Handlers) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["productID"], 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, http.StatusNotFound, "product not found")
		return 0, false
	}
	return id, true
}
