package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/pdf"
)

// Fetcher is the remote read the export job depends on. Exports always work
// from a fresh remote snapshot, never the local cache, so a snapshot taken
// on one device includes coupons issued on another.
type Fetcher interface {
	GetCoupons(ctx context.Context) ([]models.Coupon, error)
}

// CouponRenderer renders a single coupon document. Satisfied by
// pdf.Renderer.
type CouponRenderer interface {
	Render(c models.Coupon) ([]byte, error)
}

// Job produces bulk snapshots of the issued-coupon collection.
type Job struct {
	fetcher  Fetcher
	renderer CouponRenderer
	log      logger.Logger
}

func NewJob(fetcher Fetcher, renderer CouponRenderer, log logger.Logger) *Job {
	return &Job{
		fetcher:  fetcher,
		renderer: renderer,
		log:      log,
	}
}

// CSV fetches the collection and renders it as CSV. Returns the content and
// the suggested download filename.
func (j *Job) CSV(ctx context.Context) ([]byte, string, error) {
	coupons, err := j.fetcher.GetCoupons(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export fetch failed: %w", err)
	}

	fileName := fmt.Sprintf("coupons_data_%s.csv", time.Now().Format("2006-01-02"))
	return []byte(FormatCSV(coupons)), fileName, nil
}

// ZIP fetches the collection, renders one PDF per coupon and bundles them
// into a single archive. A record whose PDF fails to render is skipped and
// logged; failure is per-record, never job-fatal.
func (j *Job) ZIP(ctx context.Context) ([]byte, string, error) {
	coupons, err := j.fetcher.GetCoupons(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export fetch failed: %w", err)
	}

	jobId := uuid.New()
	j.log.Infof("bulk export %s started for %d coupons", jobId, len(coupons))

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	rendered := 0
	for _, c := range coupons {
		content, err := j.renderer.Render(c)
		if err != nil {
			j.log.Errorf("bulk export %s: skipping coupon %s: %v", jobId, c.Code, err)
			continue
		}

		entry, err := archive.Create(pdf.FileName(c))
		if err != nil {
			j.log.Errorf("bulk export %s: skipping coupon %s: %v", jobId, c.Code, err)
			continue
		}
		if _, err := entry.Write(content); err != nil {
			return nil, "", fmt.Errorf("failed to write archive entry: %w", err)
		}
		rendered++
	}

	if err := archive.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize archive: %w", err)
	}

	j.log.Infof("bulk export %s finished: %d of %d coupons rendered", jobId, rendered, len(coupons))

	fileName := fmt.Sprintf("bulk_coupons_%s.zip", time.Now().Format("2006-01-02"))
	return buf.Bytes(), fileName, nil
}
