package ui

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	apperrors "mpgdash/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleSaveView stores the submitted filter selection under a name and
// redirects back to the overview with that selection applied.
func (s *Server) handleSaveView(c *gin.Context) {
	store := s.dashboard.Views()
	if store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "saved views are not configured"})
		return
	}

	ds, err := s.dashboard.Dataset()
	if err != nil {
		log.Printf("[SaveView] ERROR: dataset unavailable: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dataset unavailable"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	stateValues, err := url.ParseQuery(c.PostForm("state"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed filter state"})
		return
	}
	state := filterFromValues(stateValues, ds)

	view, err := store.Save(c.Request.Context(), name, state)
	if err != nil {
		log.Printf("[SaveView] ERROR: %v", err)
		status := http.StatusInternalServerError
		if apperrors.HasCode(err, apperrors.CodeStoreError) {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "failed to save view"})
		return
	}

	log.Printf("[SaveView] Saved view %q (%s)", view.Name, view.ID)
	c.Redirect(http.StatusSeeOther, "/?"+stateQuery(state).Encode())
}

// handleApplyView loads a saved view by id or name and redirects to the
// overview with its selection.
func (s *Server) handleApplyView(c *gin.Context) {
	store := s.dashboard.Views()
	if store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "saved views are not configured"})
		return
	}

	ref := c.Param("ref")
	view, err := store.Get(c.Request.Context(), ref)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "saved view not found"})
			return
		}
		log.Printf("[ApplyView] ERROR: loading %q: %v", ref, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load view"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/?"+stateQuery(view.State()).Encode())
}

// handleDeleteView removes a saved view and returns to the overview.
func (s *Server) handleDeleteView(c *gin.Context) {
	store := s.dashboard.Views()
	if store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "saved views are not configured"})
		return
	}

	ref := c.Param("ref")
	if err := store.Delete(c.Request.Context(), ref); err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "saved view not found"})
			return
		}
		log.Printf("[DeleteView] ERROR: deleting %q: %v", ref, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to delete view"})
		return
	}

	log.Printf("[DeleteView] Deleted view %q", ref)
	c.Redirect(http.StatusSeeOther, "/")
}
