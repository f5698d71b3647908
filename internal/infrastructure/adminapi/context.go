package adminapi

import "net/http"

// Context carries per-call API options translated into request headers.
type Context struct {
	LanguageID       string
	UseQueueIndexing bool
}

// NewContext creates an API context. An empty languageID keeps the system
// language; useQueueIndexing defers index updates to the backend's queue.
func NewContext(languageID string, useQueueIndexing bool) *Context {
	return &Context{LanguageID: languageID, UseQueueIndexing: useQueueIndexing}
}

func (c *Context) apply(req *http.Request) {
	if c == nil {
		return
	}
	if c.LanguageID != "" {
		req.Header.Set("sw-language-id", c.LanguageID)
	}
	if c.UseQueueIndexing {
		req.Header.Set("indexing-behavior", "use-queue-indexing")
	}
}
