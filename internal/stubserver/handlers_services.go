package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
)

func (s *Server) handleServiceList(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Services())
}

func (s *Server) handleServiceGet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	svc, found := s.store.Service(id)
	if !found {
		s.notFound(c, "service not found")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (s *Server) handleServiceCreate(c *gin.Context) {
	var svc model.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if errs := dto.ValidateService(svc); len(errs) > 0 {
		s.validationFailed(c, errs)
		return
	}
	c.JSON(http.StatusCreated, s.store.CreateService(svc))
}

func (s *Server) handleServiceUpdate(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var svc model.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}
	if errs := dto.ValidateService(svc); len(errs) > 0 {
		s.validationFailed(c, errs)
		return
	}
	updated, found := s.store.UpdateService(id, svc)
	if !found {
		s.notFound(c, "service not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleServiceDelete(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if !s.store.DeleteService(id) {
		s.notFound(c, "service not found")
		return
	}
	c.Status(http.StatusNoContent)
}
