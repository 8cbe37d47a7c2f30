package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duosplit/receipt-split-service/internal/service"
)

// ReceiptHandler handles receipt upload and extraction.
type ReceiptHandler struct {
	scanService   *service.ScanService
	maxUploadSize int64
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(scanService *service.ScanService, maxUploadSize int64) *ReceiptHandler {
	return &ReceiptHandler{
		scanService:   scanService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadReceipt handles the POST /receipt endpoint
// @Summary Upload a receipt image or PDF
// @Description Extract line items from an uploaded receipt and redirect to the split page
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "Receipt image or PDF"
// @Success 302 {string} string "Redirect to the split page"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Unable to extract receipt data"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /receipt [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	file, header, err := getFormFile(c, "receipt")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("receipt", "Receipt file is required"))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded receipt", "error", err)
		respondBadRequest(c, ErrFileUpload)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(fileBytes)
	}

	receipt, err := h.scanService.Scan(c.Request.Context(), fileBytes, contentType)
	if err != nil {
		slog.Error("receipt scan failed",
			"filename", header.Filename,
			"contentType", contentType,
			"size", len(fileBytes),
			"error", err)
		respondUnprocessableEntity(c, ErrDataExtraction)
		return
	}

	query, err := receipt.QueryValue()
	if err != nil {
		slog.Error("failed to encode receipt", "error", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	c.Redirect(StatusFound, "/split.html?receipt="+query)
}
