package fetcher

import "time"

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "team-matches-service/1.0"
	defaultMaxBody   = 4 << 20
	errorBodyPreview = 512

	headerETag            = "ETag"
	headerLastModified    = "Last-Modified"
	headerIfNoneMatch     = "If-None-Match"
	headerIfModifiedSince = "If-Modified-Since"
	headerUserAgent       = "User-Agent"
)
