package nets

import (
	"net/http"
	"net/url"
	"time"
)

type HTTPClient = *http.Client

const (
	tlsHandshakeTimeout   = 30 * time.Second
	responseHeaderTimeout = 5 * time.Minute
)

func (Module) HTTPClient(
	dialer Dialer,
	getProxyURL GetProxyURL,
	isLocalAddr IsLocalAddr,
) HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			Proxy:                 httpProxy(getProxyURL, isLocalAddr),
			ForceAttemptHTTP2:     true,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
		},
	}
}

// httpProxy selects http and https proxies; socks proxies are handled by the dialer.
func httpProxy(getProxyURL GetProxyURL, isLocalAddr IsLocalAddr) func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		u, err := getProxyURL()
		if err != nil || u == nil {
			return nil, err
		}
		if !isHTTPProxy(u) {
			return nil, nil
		}
		if local, err := isLocalAddr(req.URL.Host); err != nil {
			return nil, err
		} else if local {
			return nil, nil
		}
		return u, nil
	}
}

func isHTTPProxy(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
