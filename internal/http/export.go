package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/exporters"
)

// ExportController streams admin CSV exports of catalog and account
// data.
type ExportController struct {
	exporter *exporters.CSVExporter
	auditor  Auditor
}

func NewExportController(exporter *exporters.CSVExporter, auditor Auditor) *ExportController {
	return &ExportController{exporter: exporter, auditor: auditor}
}

// Export writes one resource as a CSV attachment. The resource name
// is the URL parameter: books, users, categories, authors or progress.
func (controller *ExportController) Export(c *gin.Context) {
	resource := c.Param("resource")
	if !exporters.IsExportable(resource) {
		respondNotFound(c, "export resource")
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", resource, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	rows, err := controller.exporter.Write(c.Writer, resource)
	controller.auditor.LogExport(GetUserID(c), resource, rows, err)
	if err != nil {
		// Headers may already be written; abort the stream.
		c.Status(http.StatusInternalServerError)
		return
	}
}
