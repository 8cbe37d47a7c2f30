package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/duosplit/receipt-split-service/internal/domain"
	"github.com/duosplit/receipt-split-service/internal/imageutil"
	"github.com/duosplit/receipt-split-service/internal/metrics"
)

// ReceiptExtractor extracts structured receipt data from an image.
type ReceiptExtractor interface {
	ExtractFromImageURL(ctx context.Context, imageURL string) (domain.Receipt, error)
	ExtractFromImageData(ctx context.Context, pngData []byte) (domain.Receipt, error)
}

// ImageUploader publishes a receipt image and returns its public URL.
type ImageUploader interface {
	UploadImage(imageData []byte, filename string) (string, error)
}

// ScanServiceError represents an error in the scan service.
type ScanServiceError struct {
	Op  string
	Err error
}

func (e *ScanServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error.
func (e *ScanServiceError) Unwrap() error {
	return e.Err
}

// ScanServiceConfig holds configuration for the scan service.
type ScanServiceConfig struct {
	// MaxWorkers bounds concurrent extraction calls.
	MaxWorkers int
	// ReceiptsDir is where normalized receipt images are written while
	// the vision model reads them.
	ReceiptsDir string
	// PublicBaseURL is the externally reachable base of this service,
	// used to hand the model a URL to the stored image when no uploader
	// is configured.
	PublicBaseURL string
	// KeepTempFiles disables cleanup of stored images after extraction.
	KeepTempFiles bool
}

// ScanService turns an uploaded receipt file into structured receipt
// data: normalize to PNG, resize, publish where the vision model can
// read it, extract, clean up.
type ScanService struct {
	extractor ReceiptExtractor
	uploader  ImageUploader
	config    ScanServiceConfig
	workers   chan struct{}
}

// NewScanService creates a new scan service. uploader may be nil, in
// which case images are served from ReceiptsDir under PublicBaseURL.
func NewScanService(extractor ReceiptExtractor, uploader ImageUploader, config ScanServiceConfig) (*ScanService, error) {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 5
	}
	if err := os.MkdirAll(config.ReceiptsDir, 0755); err != nil {
		return nil, &ScanServiceError{
			Op:  "create_receipts_dir",
			Err: err,
		}
	}

	return &ScanService{
		extractor: extractor,
		uploader:  uploader,
		config:    config,
		workers:   make(chan struct{}, config.MaxWorkers),
	}, nil
}

// Scan extracts the receipt from an uploaded file. contentType is the
// declared MIME type of the upload (image/* or application/pdf).
func (s *ScanService) Scan(ctx context.Context, data []byte, contentType string) (domain.Receipt, error) {
	// Acquire a worker slot or give up when the caller does.
	select {
	case s.workers <- struct{}{}:
		defer func() { <-s.workers }()
	case <-ctx.Done():
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return domain.Receipt{}, &ScanServiceError{
			Op:  "acquire_worker",
			Err: ctx.Err(),
		}
	}

	receipt, err := s.scan(ctx, data, contentType)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return domain.Receipt{}, err
	}
	metrics.ScansTotal.WithLabelValues("ok").Inc()
	return receipt, nil
}

func (s *ScanService) scan(ctx context.Context, data []byte, contentType string) (domain.Receipt, error) {
	pngData, err := imageutil.ToPNG(data, contentType)
	if err != nil {
		return domain.Receipt{}, &ScanServiceError{
			Op:  "normalize_image",
			Err: err,
		}
	}

	pngData, err = imageutil.Resize(pngData, imageutil.DefaultMaxDimension)
	if err != nil {
		return domain.Receipt{}, &ScanServiceError{
			Op:  "resize_image",
			Err: err,
		}
	}

	filename := uuid.New().String() + ".png"
	localPath := filepath.Join(s.config.ReceiptsDir, filename)
	if err := os.WriteFile(localPath, pngData, 0644); err != nil {
		return domain.Receipt{}, &ScanServiceError{
			Op:  "store_image",
			Err: err,
		}
	}
	if !s.config.KeepTempFiles {
		defer func() {
			if err := os.Remove(localPath); err != nil {
				slog.Warn("failed to remove receipt image", "path", localPath, "error", err)
			}
		}()
	}

	imageURL, err := s.publishImage(pngData, filename)
	if err != nil {
		return domain.Receipt{}, err
	}

	slog.Info("extracting receipt", "image", filename, "bytes", len(pngData))
	start := time.Now()
	var receipt domain.Receipt
	if imageURL != "" {
		receipt, err = s.extractor.ExtractFromImageURL(ctx, imageURL)
	} else {
		receipt, err = s.extractor.ExtractFromImageData(ctx, pngData)
	}
	metrics.ExtractionSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Receipt{}, &ScanServiceError{
			Op:  "extract_receipt",
			Err: err,
		}
	}

	slog.Info("receipt extracted",
		"items", len(receipt.Items),
		"total", receipt.Total,
		"duration", time.Since(start).Round(time.Millisecond))
	return receipt, nil
}

// publishImage makes the stored image reachable by the vision model.
// It prefers the configured uploader, then the service's own public
// /receipts route. An empty URL means the caller should send the image
// bytes inline instead.
func (s *ScanService) publishImage(pngData []byte, filename string) (string, error) {
	if s.uploader != nil {
		url, err := s.uploader.UploadImage(pngData, filename)
		if err != nil {
			return "", &ScanServiceError{
				Op:  "upload_image",
				Err: err,
			}
		}
		return url, nil
	}
	if s.config.PublicBaseURL != "" {
		return s.config.PublicBaseURL + "/receipts/" + filename, nil
	}
	return "", nil
}
