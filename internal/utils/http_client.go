package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client and is used by the sync extension to
// pull and push datasets.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with the given request
// timeout. Transient failures (transport errors and 5xx) are retried twice.
//
//	client := utils.NewHTTPClient(15 * time.Second)
//	resp, err := client.R().SetContext(ctx).Get(url)
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("User-Agent", "onelock")

	return &HTTPClient{Client: c}
}
