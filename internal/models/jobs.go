package models

// ThumbnailJob is the payload enqueued for every image upload. It lives only
// on the queue; the worker re-reads everything else from the catalog so that
// redelivery is harmless.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// WelcomeJob is enqueued on registration.
type WelcomeJob struct {
	UserID string `json:"userId"`
}
