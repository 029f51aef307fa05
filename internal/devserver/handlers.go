package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/validation"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, http.StatusUnauthorized, "Authentication failed", "username and password are required")
		return
	}

	role, err := s.users.Authenticate(form.Username, form.Password)
	if err != nil {
		s.log.Warn(c.Request.Context(), "login rejected", "user", form.Username)
		writeError(c, http.StatusUnauthorized, "Authentication failed", "Bad credentials")
		return
	}

	token, err := GenerateToken(form.Username, role, s.secret, s.ttl)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal", "could not issue session")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "username": form.Username})
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (s *Server) userInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.UserInfo{
		Success:  true,
		Username: c.GetString(ctxUsername),
		Role:     c.GetString(ctxRole),
	})
}

// resource wires the five CRUD routes of one table.
type resource[T models.Entity] struct {
	table    *Table[T]
	validate func(T) *validation.Validator
	// decorate fills read-only fields before an item is returned.
	decorate func(T) T
}

func (r resource[T]) out(item T) T {
	if r.decorate == nil {
		return item
	}
	return r.decorate(item)
}

func (r resource[T]) outAll(items []T) []T {
	for i := range items {
		items[i] = r.out(items[i])
	}
	return items
}

func (r resource[T]) register(g *gin.RouterGroup, path string) {
	g.GET(path, func(c *gin.Context) {
		c.JSON(http.StatusOK, r.outAll(r.table.List()))
	})
	g.GET(path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		item, err := r.table.Get(id)
		if err != nil {
			writeNotFound(c, id)
			return
		}
		c.JSON(http.StatusOK, r.out(item))
	})
	g.POST(path, func(c *gin.Context) {
		item, ok := r.bind(c)
		if !ok {
			return
		}
		c.JSON(http.StatusCreated, r.out(r.table.Create(item)))
	})
	g.PUT(path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		item, ok := r.bind(c)
		if !ok {
			return
		}
		updated, err := r.table.Update(id, item)
		if err != nil {
			writeNotFound(c, id)
			return
		}
		c.JSON(http.StatusOK, r.out(updated))
	})
	g.DELETE(path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := r.table.Delete(id); err != nil {
			writeNotFound(c, id)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// bind decodes and validates the request body.
func (r resource[T]) bind(c *gin.Context) (T, bool) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
		return item, false
	}
	if r.validate != nil {
		if v := r.validate(item); v.HasErrors() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "validation_failed",
				"message": v.FirstError(),
				"fields":  v.Fields(),
			})
			return item, false
		}
	}
	return item, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "bad_request", "invalid id")
		return 0, false
	}
	return id, true
}

func writeNotFound(c *gin.Context, id int64) {
	writeError(c, http.StatusNotFound, "not_found", "no record with id "+strconv.FormatInt(id, 10))
}

// validateAppointment adds referential checks to the field rules.
func (s *Server) validateAppointment(a models.Appointment) *validation.Validator {
	v := validation.ValidateAppointment(a)
	if a.ClientID > 0 {
		if _, err := s.clients.Get(a.ClientID); errors.Is(err, ErrNotFound) {
			v.Check(validation.FieldClient, "client does not exist")
		}
	}
	if a.ServiceID > 0 {
		if _, err := s.services.Get(a.ServiceID); errors.Is(err, ErrNotFound) {
			v.Check(validation.FieldService, "service does not exist")
		}
	}
	return v
}

// withNames fills the display names the backend adds on reads.
func (s *Server) withNames(a models.Appointment) models.Appointment {
	a.ClientName, a.ServiceName = nil, nil
	if c, err := s.clients.Get(a.ClientID); err == nil {
		a.ClientName = &c.Name
	}
	if sv, err := s.services.Get(a.ServiceID); err == nil {
		a.ServiceName = &sv.Name
	}
	return a
}

func (s *Server) appointmentsByClient(c *gin.Context) {
	id, ok := pathID(c, "clienteId")
	if !ok {
		return
	}
	items := s.appointments.Filter(func(a models.Appointment) bool { return a.ClientID == id })
	for i := range items {
		items[i] = s.withNames(items[i])
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) createInvoice(c *gin.Context) {
	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if v := validation.ValidateInvoice(inv); v.HasErrors() {
		writeError(c, http.StatusBadRequest, "validation_failed", v.FirstError())
		return
	}
	if inv.AppointmentID != 0 {
		if _, err := s.appointments.Get(inv.AppointmentID); err != nil {
			writeError(c, http.StatusBadRequest, "validation_failed", "appointment does not exist")
			return
		}
	}
	c.JSON(http.StatusCreated, s.invoices.Create(inv))
}

func (s *Server) invoicesByClient(c *gin.Context) {
	id, ok := pathID(c, "clienteId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.invoices.Filter(func(inv models.Invoice) bool { return inv.ClientID == id }))
}
