// Package job contains the scheduled background jobs of the Atelier
// backend.
package job

import (
	"context"
	"time"

	"github.com/atelier-moveis/atelier-backend/database/model"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"
	"github.com/atelier-moveis/atelier-backend/util/common"

	"go.uber.org/atomic"
	"gorm.io/gorm"
)

const sweepTimeout = 5 * time.Minute

// OrphanBlobJob reclaims bucket objects that no product image or gallery
// photo references anymore. The create/delete sequences never roll back
// uploads, so failed requests leave blobs behind; this job sweeps them
// once they outlive the grace window.
type OrphanBlobJob struct {
	db      *gorm.DB
	store   objstore.Store
	grace   time.Duration
	running *atomic.Bool
}

func NewOrphanBlobJob(db *gorm.DB, store objstore.Store, grace time.Duration) *OrphanBlobJob {
	return &OrphanBlobJob{
		db:      db,
		store:   store,
		grace:   grace,
		running: atomic.NewBool(false),
	}
}

func (j *OrphanBlobJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	objects, err := j.store.List(ctx, "")
	if err != nil {
		logger.Warning("orphan sweep: listing bucket failed:", err)
		return
	}

	referenced, err := j.referencedKeys()
	if err != nil {
		logger.Warning("orphan sweep: collecting references failed:", err)
		return
	}

	cutoff := time.Now().Add(-j.grace)
	reclaimed := 0
	var reclaimedBytes int64
	for _, object := range objects {
		if _, ok := referenced[object.Key]; ok {
			continue
		}
		// Without a timestamp the blob's age is unknown; leave it for a
		// later sweep rather than racing an in-flight upload.
		if object.UpdatedAt.IsZero() || object.UpdatedAt.After(cutoff) {
			continue
		}
		if err := j.store.Delete(ctx, object.Key); err != nil {
			logger.Debug("orphan sweep: delete", object.Key, "failed:", err)
			continue
		}
		reclaimed++
		reclaimedBytes += object.Size
	}

	if reclaimed > 0 {
		logger.Infof("orphan sweep: reclaimed %d blobs (%s)", reclaimed, common.FormatSize(reclaimedBytes))
	}
}

// referencedKeys returns the storage keys of every URL the database still
// points at.
func (j *OrphanBlobJob) referencedKeys() (map[string]struct{}, error) {
	var urls []string
	if err := j.db.Model(&model.ProductImage{}).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	var photoURLs []string
	if err := j.db.Model(&model.Photo{}).Pluck("url", &photoURLs).Error; err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(urls)+len(photoURLs))
	for _, url := range append(urls, photoURLs...) {
		if key := objstore.KeyFromURL(url); key != "" {
			referenced[key] = struct{}{}
		}
	}
	return referenced, nil
}
