package monitoring

import (
	"sync/atomic"
)

var imageUploadsAccepted atomic.Uint64
var imageUploadsRejected atomic.Uint64
var imageUploadBytesTotal atomic.Int64

type UploadStats struct {
	AcceptedTotal uint64
	RejectedTotal uint64
	BytesTotal    int64
}

// RecordImageUpload counts one image-upload decision. Rejected uploads are the
// silently skipped ones (bad extension or non-image content).
func RecordImageUpload(bytes int64, accepted bool) {
	if !accepted {
		imageUploadsRejected.Add(1)
		return
	}

	imageUploadsAccepted.Add(1)
	if bytes > 0 {
		imageUploadBytesTotal.Add(bytes)
	}
}

func getUploadStats() UploadStats {
	return UploadStats{
		AcceptedTotal: imageUploadsAccepted.Load(),
		RejectedTotal: imageUploadsRejected.Load(),
		BytesTotal:    imageUploadBytesTotal.Load(),
	}
}
