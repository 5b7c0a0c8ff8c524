package emailsync

import "time"

type SyncResult struct {
	Success        bool   `json:"success"`
	ProcessedCount int    `json:"processedCount"`
	AddedCount     int    `json:"addedCount"`
	Message        string `json:"message"`
}

type SyncLogResponse struct {
	ID              string    `json:"id"`
	LastSync        time.Time `json:"last_sync"`
	EmailsProcessed int       `json:"emails_processed"`
	Status          string    `json:"status"`
}
