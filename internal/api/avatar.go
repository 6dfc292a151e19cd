package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/avatar"
)

func (h *Handler) handleUploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		writeError(c, http.StatusBadRequest, "please upload an image")
		return
	}
	if file.Size > h.avatarMaxBytes {
		writeError(c, http.StatusBadRequest, "image too large")
		return
	}

	reader, err := file.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "please upload an image")
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, h.avatarMaxBytes+1))
	if err != nil || int64(len(data)) > h.avatarMaxBytes {
		writeError(c, http.StatusBadRequest, "image too large")
		return
	}

	processed, err := avatar.Process(file.Filename, data)
	if err != nil {
		writeError(c, http.StatusBadRequest, "please upload a jpg, jpeg or png image")
		return
	}

	user, _ := currentSession(c)
	if err := h.store.SetAvatar(c.Request.Context(), user.ID, processed); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to save avatar")
		return
	}
	user.Avatar = processed

	c.Status(http.StatusOK)
}

func (h *Handler) handleDeleteAvatar(c *gin.Context) {
	user, _ := currentSession(c)
	if err := h.store.ClearAvatar(c.Request.Context(), user.ID); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete avatar")
		return
	}
	user.Avatar = nil

	c.Status(http.StatusOK)
}

// handleGetAvatar serves a user's avatar publicly by id; the stored bytes
// are always the processed PNG.
func (h *Handler) handleGetAvatar(c *gin.Context) {
	user, err := h.store.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil || len(user.Avatar) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, "image/png", user.Avatar)
}
