package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/addressbook-backend/internal/http/views"
	"github.com/yungbote/addressbook-backend/internal/platform/apierr"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
	"github.com/yungbote/addressbook-backend/internal/services"
)

// ContactHandler serves the HTML address book pages.
type ContactHandler struct {
	log      *logger.Logger
	contacts services.ContactService
}

func NewContactHandler(log *logger.Logger, contacts services.ContactService) *ContactHandler {
	return &ContactHandler{log: log.With("handler", "ContactHandler"), contacts: contacts}
}

// GET /
func (h *ContactHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.ContactForm, views.FormView{Contact: h.contacts.NewDraft()})
}

// POST /contact
func (h *ContactHandler) Create(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid form submission")
		return
	}
	created, fieldErrs, err := h.contacts.Create(c.Request.Context(), in)
	if err != nil {
		h.log.Error("create contact failed", "error", err)
		h.renderError(c, http.StatusInternalServerError, "Could not save contact")
		return
	}
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusOK, views.ContactForm, views.FormView{
			Contact:     created,
			DateOfBirth: in.DateOfBirth,
			Errors:      fieldErrs,
		})
		return
	}
	c.HTML(http.StatusCreated, views.ShowContact, views.ContactView{Contact: created})
}

// GET /contact?startIndex=N
func (h *ContactHandler) List(c *gin.Context) {
	startIndex, err := parseStartIndex(c, false)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.contacts.List(c.Request.Context(), startIndex)
	if err != nil {
		h.renderAPIError(c, err)
		return
	}
	c.HTML(http.StatusOK, views.ListContact, views.ListView{Page: page})
}

// GET /contact/:contactId
func (h *ContactHandler) Show(c *gin.Context) {
	id := c.Param("contactId")
	found, err := h.contacts.Get(c.Request.Context(), id)
	if err != nil {
		if apierr.As(err, "").Status == http.StatusNotFound {
			c.HTML(http.StatusNotFound, views.NotFound, views.NotFoundView{ID: id})
			return
		}
		h.renderAPIError(c, err)
		return
	}
	// The path parameter is the record's key; the page always shows it.
	found.ID = id
	c.HTML(http.StatusOK, views.ShowContact, views.ContactView{Contact: found})
}

func (h *ContactHandler) renderAPIError(c *gin.Context, err error) {
	ae := apierr.As(err, "internal_error")
	msg := http.StatusText(ae.Status)
	if ae.Status < http.StatusInternalServerError && ae.Err != nil {
		msg = ae.Err.Error()
	} else {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	h.renderError(c, ae.Status, msg)
}

func (h *ContactHandler) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, views.Error, views.ErrorView{Status: status, Message: msg})
}

var (
	errStartIndexMissing = errors.New("startIndex is required")
	errStartIndexInvalid = errors.New("startIndex must be a non-negative integer")
)

// parseStartIndex reads ?startIndex. When optional is set a missing value
// means 0.
func parseStartIndex(c *gin.Context, optional bool) (int, error) {
	raw, ok := c.GetQuery("startIndex")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		if optional {
			return 0, nil
		}
		return 0, errStartIndexMissing
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errStartIndexInvalid
	}
	return n, nil
}
