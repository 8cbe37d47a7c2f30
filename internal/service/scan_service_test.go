package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/duosplit/receipt-split-service/internal/domain"
	"github.com/duosplit/receipt-split-service/internal/openrouter"
)

type recordingExtractor struct {
	urls []string
	data [][]byte
	err  error
}

func (r *recordingExtractor) ExtractFromImageURL(ctx context.Context, imageURL string) (domain.Receipt, error) {
	r.urls = append(r.urls, imageURL)
	if r.err != nil {
		return domain.Receipt{}, r.err
	}
	return domain.Receipt{Total: "1.00", Items: []domain.ReceiptItem{{Label: "X", Price: "1.00"}}}, nil
}

func (r *recordingExtractor) ExtractFromImageData(ctx context.Context, pngData []byte) (domain.Receipt, error) {
	r.data = append(r.data, pngData)
	if r.err != nil {
		return domain.Receipt{}, r.err
	}
	return domain.Receipt{Total: "1.00", Items: []domain.ReceiptItem{{Label: "X", Price: "1.00"}}}, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func newTestScanService(t *testing.T, extractor ReceiptExtractor, config ScanServiceConfig) *ScanService {
	t.Helper()
	if config.ReceiptsDir == "" {
		config.ReceiptsDir = t.TempDir()
	}
	svc, err := NewScanService(extractor, nil, config)
	if err != nil {
		t.Fatalf("NewScanService: %v", err)
	}
	return svc
}

func TestScanWithFakeExtractor(t *testing.T) {
	svc := newTestScanService(t, openrouter.NewFake(), ScanServiceConfig{})

	receipt, err := svc.Scan(context.Background(), testPNG(t), "image/png")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if receipt.Total != "79.12" {
		t.Errorf("total = %q, want canned 79.12", receipt.Total)
	}
	if len(receipt.Items) == 0 {
		t.Error("canned receipt has no items")
	}
}

func TestScanUsesPublicURLWhenConfigured(t *testing.T) {
	extractor := &recordingExtractor{}
	svc := newTestScanService(t, extractor, ScanServiceConfig{
		PublicBaseURL: "https://example.test",
	})

	if _, err := svc.Scan(context.Background(), testPNG(t), "image/png"); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(extractor.urls) != 1 {
		t.Fatalf("extractor called %d times by URL, want 1", len(extractor.urls))
	}
	if url := extractor.urls[0]; !strings.HasPrefix(url, "https://example.test/receipts/") {
		t.Errorf("image URL = %q, want under /receipts/", url)
	}
}

func TestScanSendsInlineDataWithoutPublicURL(t *testing.T) {
	extractor := &recordingExtractor{}
	svc := newTestScanService(t, extractor, ScanServiceConfig{})

	if _, err := svc.Scan(context.Background(), testPNG(t), "image/png"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(extractor.data) != 1 {
		t.Fatalf("extractor called %d times with inline data, want 1", len(extractor.data))
	}
	if len(extractor.urls) != 0 {
		t.Error("extractor was also called by URL")
	}
}

func TestScanCleansUpStoredImage(t *testing.T) {
	dir := t.TempDir()
	svc := newTestScanService(t, openrouter.NewFake(), ScanServiceConfig{ReceiptsDir: dir})

	if _, err := svc.Scan(context.Background(), testPNG(t), "image/png"); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files left behind, want 0", len(entries))
	}
}

func TestScanKeepsImageWhenDebugging(t *testing.T) {
	dir := t.TempDir()
	svc := newTestScanService(t, openrouter.NewFake(), ScanServiceConfig{
		ReceiptsDir:   dir,
		KeepTempFiles: true,
	})

	if _, err := svc.Scan(context.Background(), testPNG(t), "image/png"); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files kept, want 1", len(entries))
	}
}

func TestScanRejectsUnreadableUpload(t *testing.T) {
	svc := newTestScanService(t, openrouter.NewFake(), ScanServiceConfig{})

	if _, err := svc.Scan(context.Background(), []byte("not an image"), "image/jpeg"); err == nil {
		t.Error("Scan of garbage succeeded, want error")
	}
}

func TestScanPropagatesExtractorError(t *testing.T) {
	extractor := &recordingExtractor{err: errors.New("model unavailable")}
	svc := newTestScanService(t, extractor, ScanServiceConfig{})

	_, err := svc.Scan(context.Background(), testPNG(t), "image/png")
	if err == nil {
		t.Fatal("Scan succeeded, want error")
	}
	var scanErr *ScanServiceError
	if !errors.As(err, &scanErr) {
		t.Errorf("error type = %T, want *ScanServiceError", err)
	}
}
