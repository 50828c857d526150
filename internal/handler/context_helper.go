package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

type referenceReloader interface {
	Reload(ctx context.Context) error
}

// reloadReferenceData refreshes the cached reference view after a write. A
// superseded or failed reload is dropped; the next active-year switch or
// request-triggered reload will rebuild it.
func reloadReferenceData(c *gin.Context, view referenceReloader) {
	if view == nil {
		return
	}
	_ = view.Reload(c.Request.Context())
}

func excludingEnrollment(c *gin.Context) string {
	return c.Query("excludingEnrollmentId")
}
