package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/orgauthz/internal/hierarchy"
	"github.com/charlesng35/orgauthz/pkg/response"
)

// MessagingHandler answers direct messaging checks between members.
type MessagingHandler struct {
	authz *hierarchy.Authorizer
}

// NewMessagingHandler constructs a MessagingHandler.
func NewMessagingHandler(authz *hierarchy.Authorizer) (*MessagingHandler, error) {
	if authz == nil {
		return nil, errors.New("messaging handler: authorizer is required")
	}
	return &MessagingHandler{authz: authz}, nil
}

type canMessageRequest struct {
	SenderID    string `json:"sender_id" validate:"required,max=64"`
	RecipientID string `json:"recipient_id" validate:"required,max=64"`
}

// POST /api/messaging/can-message
// A denial is still a successful response; only lookup failures are errors.
func (h *MessagingHandler) CanMessage(c *gin.Context) {
	var body canMessageRequest
	if !bindAndValidate(c, &body) {
		return
	}

	decision, err := h.authz.CanMessage(requestContext(c), body.SenderID, body.RecipientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, decision)
}

// GET /api/messaging/rules
func (h *MessagingHandler) Rules(c *gin.Context) {
	response.Success(c, http.StatusOK, hierarchy.Rules())
}
