package infra

import (
	"time"

	"github.com/imroc/req/v3"
)

// Used to fetch remote baseline sources.
func ProvideHttpClient() *req.Client {
	return req.C().
		// Timeout of all requests.
		SetTimeout(10 * time.Second).
		// Enable retry and set the maximum retry count.
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(3 * time.Second)
}
