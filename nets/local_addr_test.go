package nets

import (
	"net/http"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/modes"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	)
}

func TestIsLocalAddr(t *testing.T) {
	testScope(t).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for _, c := range []struct {
			addr  string
			local bool
		}{
			{"127.0.0.1:10000", true},
			{"127.0.0.1", true},
			{"localhost:11434", true},
			{"[::1]:80", true},
			{"192.168.1.2:8080", true},
			{"10.0.0.1", true},
			{"8.8.8.8:53", false},
			{"example.com", false},
		} {
			yes, err := isLocalAddr(c.addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != c.local {
				t.Fatalf("%s: got %v", c.addr, yes)
			}
		}
	})
}

func TestHTTPProxy(t *testing.T) {
	testScope(t).Fork(
		func() ProxyAddr {
			return "http://proxy.example.com:3128"
		},
	).Call(func(
		client HTTPClient,
		getDialer GetProxyDialer,
	) {
		proxyFunc := client.Transport.(*http.Transport).Proxy

		req, err := http.NewRequest("GET", "https://8.8.8.8/v1/models", nil)
		if err != nil {
			t.Fatal(err)
		}
		u, err := proxyFunc(req)
		if err != nil {
			t.Fatal(err)
		}
		if u == nil || u.Host != "proxy.example.com:3128" {
			t.Fatalf("got %v", u)
		}

		req, err = http.NewRequest("GET", "http://127.0.0.1:11434/v1/chat/completions", nil)
		if err != nil {
			t.Fatal(err)
		}
		u, err = proxyFunc(req)
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}

		// http proxies are not dialed through
		if _, err := getDialer(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestNoProxyInTests(t *testing.T) {
	testScope(t).Call(func(
		addr ProxyAddr,
		client HTTPClient,
	) {
		if addr != "" {
			t.Fatalf("got %q", addr)
		}
		req, err := http.NewRequest("GET", "https://8.8.8.8/", nil)
		if err != nil {
			t.Fatal(err)
		}
		u, err := client.Transport.(*http.Transport).Proxy(req)
		if err != nil || u != nil {
			t.Fatalf("got %v %v", u, err)
		}
	})
}
