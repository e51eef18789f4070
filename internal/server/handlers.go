package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/auth"
	"github.com/dmoreno/invitado/internal/dashboard"
	"github.com/dmoreno/invitado/internal/links"
	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/rsvp"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
		return
	}

	if err := s.authn.Authenticate(req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.jwt.Generate(s.store.EventID())
	if err != nil {
		s.log.Error("token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.RawState())
}

func (s *Server) handlePatchConfig(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object"})
		return
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty patch"})
		return
	}

	s.store.SetState(patch, false)
	s.bus.UpdateConfig(patch)
	c.JSON(http.StatusOK, s.store.RawState())
}

func (s *Server) handleReloadConfig(c *gin.Context) {
	if err := s.store.LoadFromRemote(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.store.RawState())
}

func (s *Server) handleRSVP(c *gin.Context) {
	var sub rsvp.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission body"})
		return
	}

	inv := links.ParseInvitation(c.Request.URL.Query())
	if sub.GuestID == "" {
		sub.GuestID = inv.ID
	}

	res, err := s.rsvp.Submit(c.Request.Context(), inv, sub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// newDashboard builds a view for one request. Dashboard state (filter, sort,
// page) belongs to a single client and must not be shared across requests.
func (s *Server) newDashboard() *dashboard.Dashboard {
	return dashboard.New(s.store, dashboard.WithLogger(s.log))
}

func (s *Server) handleListGuests(c *gin.Context) {
	dash := s.newDashboard()
	if err := dash.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"guests": dash.Filtered(),
		"stats":  dash.Stats(),
	})
}

type guestRequest struct {
	ID     string `json:"id"`
	Name   string `json:"guest" binding:"required"`
	Adults int    `json:"adults"`
	Kids   int    `json:"kids"`
	Type   string `json:"type"`
}

// handleSaveGuest creates or updates an invitation and returns its link.
func (s *Server) handleSaveGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest name required"})
		return
	}

	g := models.Guest{
		ID:     req.ID,
		Name:   req.Name,
		Adults: req.Adults,
		Kids:   req.Kids,
		Type:   req.Type,
		Active: true,
	}
	if g.ID == "" {
		g.ID = links.NewToken()
	}
	inv := links.Invitation{
		Guest:  g.Name,
		ID:     g.ID,
		Adults: g.Adults,
		Kids:   g.Kids,
		Type:   g.Type,
	}
	if inv.Adults <= 0 {
		inv.Adults = 2
	}
	if inv.Type == "" {
		inv.Type = "f"
	}
	g.Link = inv.URL(s.baseURL)

	id, err := s.store.SaveGuest(c.Request.Context(), g)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "link": g.Link})
}

func (s *Server) handleImportGuests(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv file required in field 'file'"})
		return
	}
	defer file.Close()

	report, err := s.newDashboard().BulkImport(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleToggleGuest(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active flag required"})
		return
	}

	if err := s.store.ToggleGuestStatus(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "active": *req.Active})
}

func (s *Server) handleDeleteGuest(c *gin.Context) {
	if err := s.store.DeleteGuest(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePreviewRSVP(c *gin.Context) {
	var req struct {
		State string `json:"state" binding:"required,oneof=yes no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be yes or no"})
		return
	}
	s.bus.SimulateRSVP(req.State)
	c.JSON(http.StatusOK, gin.H{"state": req.State})
}
