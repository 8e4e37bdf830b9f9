package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/addressbook-backend/internal/http/response"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
	"github.com/yungbote/addressbook-backend/internal/services"
)

// ContactAPIHandler is the JSON mirror of ContactHandler.
type ContactAPIHandler struct {
	log      *logger.Logger
	contacts services.ContactService
}

func NewContactAPIHandler(log *logger.Logger, contacts services.ContactService) *ContactAPIHandler {
	return &ContactAPIHandler{log: log.With("handler", "ContactAPIHandler"), contacts: contacts}
}

// GET /api/contacts?startIndex=N
func (h *ContactAPIHandler) List(c *gin.Context) {
	startIndex, err := parseStartIndex(c, true)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_start_index", err)
		return
	}
	page, err := h.contacts.List(c.Request.Context(), startIndex)
	if err != nil {
		h.fail(c, err, "list_contacts_failed")
		return
	}
	response.RespondOK(c, gin.H{"page": page})
}

// GET /api/contacts/:contactId
func (h *ContactAPIHandler) Get(c *gin.Context) {
	id := c.Param("contactId")
	found, err := h.contacts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get_contact_failed")
		return
	}
	found.ID = id
	response.RespondOK(c, gin.H{"contact": found})
}

// POST /api/contacts
func (h *ContactAPIHandler) Create(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, fieldErrs, err := h.contacts.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "create_contact_failed")
		return
	}
	if len(fieldErrs) > 0 {
		response.RespondFieldErrors(c, fieldErrs)
		return
	}
	response.RespondCreated(c, gin.H{"contact": created})
}

func (h *ContactAPIHandler) fail(c *gin.Context, err error, code string) {
	h.log.Warn("contact api request failed", "path", c.FullPath(), "code", code, "error", err)
	response.RespondAPIError(c, err, code)
}
