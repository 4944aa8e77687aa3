package http

import (
	"github.com/gin-gonic/gin"

	pkgResponse "companion-bot/pkg/response"
)

// Create godoc
// @Summary     Create a catalog item
// @Description Adds a sellable photo or video to the catalog. FileID must reference media already uploaded to Telegram.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Item data"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/content/items [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateReq(c)
	if err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	item, err := h.uc.Create(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, newItemResp(item))
}

// List godoc
// @Summary     List catalog items
// @Description Returns all catalog items; only_active filters out disabled ones.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       only_active query bool false "Only active items"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/content/items [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	items, err := h.uc.List(ctx, req.OnlyActive)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, newListResp(items))
}

// Detail godoc
// @Summary     Get a catalog item
// @Description Returns a single catalog item by its ID.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       id path string true "Item ID"
// @Success     200 {object} itemResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/content/items/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.uc.Get(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Get: %v", err)
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, newItemResp(item))
}

// Update godoc
// @Summary     Update a catalog item
// @Description Patches an existing catalog item. All fields are optional.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       id   path string    true "Item ID"
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} itemResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/content/items/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateReq(c)
	if err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	item, err := h.uc.Update(ctx, req.ID, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, newItemResp(item))
}

// Delete godoc
// @Summary     Delete a catalog item
// @Description Permanently removes a catalog item by ID.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       id path string true "Item ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/content/items/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Delete(ctx, c.Param("id")); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		h.respondError(c, err)
		return
	}

	pkgResponse.OK(c, nil)
}
