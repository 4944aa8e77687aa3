package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"companion-bot/internal/persona"
	pkgResponse "companion-bot/pkg/response"
)

type setReq struct {
	SystemPrompt string `json:"system_prompt" binding:"required,min=1,max=8000"`
}

type profileResp struct {
	SystemPrompt string    `json:"system_prompt"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Get godoc
// @Summary     Get the current persona
// @Description Returns the system prompt currently injected into every completion.
// @Tags        Persona
// @Produce     json
// @Success     200 {object} profileResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/persona [GET]
func (h *handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.repo.Current(ctx)
	if err != nil {
		h.l.Errorf(ctx, "persona.Current: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, profileResp{SystemPrompt: profile.SystemPrompt, UpdatedAt: profile.UpdatedAt})
}

// Set godoc
// @Summary     Replace the persona
// @Description Overwrites the system prompt. Takes effect on the very next turn; no restart needed.
// @Tags        Persona
// @Accept      json
// @Produce     json
// @Param       body body setReq true "New persona"
// @Success     200 {object} profileResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    AdminToken
// @Router      /api/v1/admin/persona [PUT]
func (h *handler) Set(c *gin.Context) {
	ctx := c.Request.Context()

	var req setReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	profile := persona.Profile{SystemPrompt: req.SystemPrompt}
	if err := h.repo.Set(ctx, profile); err != nil {
		h.l.Errorf(ctx, "persona.Set: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	stored, err := h.repo.Current(ctx)
	if err != nil {
		h.l.Errorf(ctx, "persona.Current after Set: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, profileResp{SystemPrompt: stored.SystemPrompt, UpdatedAt: stored.UpdatedAt})
}
