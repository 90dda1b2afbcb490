package collegeapi

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported proxy scheme")
	ErrInvalidProxyURL   = errors.New("invalid proxy URL")
)

var supportedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"socks5": true,
}

// parseProxyURL validates a proxy URL of one of the supported schemes.
func parseProxyURL(proxyURL string) (*url.URL, error) {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, ErrInvalidProxyURL
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidProxyURL
	}
	if !supportedSchemes[parsed.Scheme] {
		return nil, ErrUnsupportedScheme
	}
	return parsed, nil
}

// NewHTTPClient creates the HTTP client used by HTTPSource.
//
// An empty proxyURL falls back to the HTTP_PROXY/HTTPS_PROXY/NO_PROXY
// environment. socks5 proxies are dialed through golang.org/x/net/proxy,
// http(s) proxies through the transport's Proxy hook. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if proxyURL != "" {
		parsed, err := parseProxyURL(proxyURL)
		if err != nil {
			return nil, err
		}
		if parsed.Scheme == "socks5" {
			var auth *proxy.Auth
			if parsed.User != nil {
				pass, _ := parsed.User.Password()
				auth = &proxy.Auth{
					User:     parsed.User.Username(),
					Password: pass,
				}
			}
			dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
			if err != nil {
				return nil, err
			}
			transport.Proxy = nil
			transport.Dial = dialer.Dial
		} else {
			transport.Proxy = http.ProxyURL(parsed)
		}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
