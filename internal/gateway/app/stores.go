package app

import (
	"log"

	cachetranscript "contextify/internal/cache/transcript"
	"contextify/internal/gateway/config"
	transcriptrepo "contextify/internal/gateway/repository/transcript"
)

// initTranscriptStore picks the transcript origin and wraps it with the
// read cache. Returns nil when archival is disabled, which the chat
// service and transcript handler both tolerate.
func initTranscriptStore(cfg *config.Config) transcriptrepo.Store {
	var origin transcriptrepo.Store
	if cfg.Transcript.CanUseS3() {
		s3Store, err := transcriptrepo.NewS3Store(transcriptrepo.S3Config{
			Endpoint:  cfg.Transcript.Endpoint,
			Region:    cfg.Transcript.Region,
			AccessKey: cfg.Transcript.AccessKey,
			SecretKey: cfg.Transcript.SecretKey,
			Bucket:    cfg.Transcript.Bucket,
			UseSSL:    cfg.Transcript.UseSSL,
		})
		if err != nil {
			log.Printf("transcript store: s3 init failed: %v", err)
		} else {
			log.Printf("transcript store: s3 bucket=%s endpoint=%s", cfg.Transcript.Bucket, cfg.Transcript.Endpoint)
			origin = s3Store
		}
	}
	if origin == nil {
		if !cfg.Transcript.Enabled {
			return nil
		}
		log.Printf("transcript store: using in-memory fallback (s3 config incomplete)")
		origin = transcriptrepo.NewMemoryStore()
	}
	return cachetranscript.NewCachedStore(origin, cachetranscript.DefaultCacheConfig())
}
