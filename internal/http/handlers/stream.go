package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/events"
	"github.com/civicpulse/backend/internal/http/middleware"
)

// @Summary Live ticket event stream
// @Description Server-sent events scoped to the caller: citizens see their
// @Description own tickets, supervisors their assignments, staff their
// @Description municipality.
// @Tags stream
// @Produce text/event-stream
// @Router /api/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	ch, cancel, err := h.Lifecycle.Bus.Subscribe(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			if !eventVisible(sess, ev) {
				return true
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func eventVisible(sess auth.Session, ev events.TicketEvent) bool {
	switch sess.Role {
	case auth.RoleStaff:
		return ev.MunicipalityID == sess.MunicipalityID
	case auth.RoleSupervisor:
		return ev.SupervisorID == sess.SubjectID
	default:
		return ev.ReporterID == sess.SubjectID
	}
}
