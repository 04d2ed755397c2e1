package handlers

import (
	"log"
	"net/http"

	"uneaty-api/errs"

	"github.com/gin-gonic/gin"
)

// Every response is the same envelope: {success, data?, error?, count?}.

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

// respondErr maps the error taxonomy onto status codes. Unexpected
// errors are logged with their cause and masked in the envelope.
func respondErr(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = errs.ErrUnexpected.Error()
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondBindErr reports gin binding failures as validation errors.
func respondBindErr(c *gin.Context, err error) {
	respondErr(c, errs.Validation("%s", err.Error()))
}
