package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// New returns a resty client honouring proxy environment variables
func New(timeout time.Duration) *resty.Client {
	return resty.New().SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment, // 通用适配环境变量
	}).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond)
}
