package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// openInput opens file for reading. An empty name or "-" reads from
// standard input; an http(s) URL is fetched directly, matching the
// convention this CLI's teacher uses for its own document sources.
func openInput(file string) (io.ReadCloser, error) {
	if file == "" || file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	u, err := url.Parse(file)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		var (
			res *http.Response
			sp  = newSpinner(fmt.Sprintf("fetching %s", u))
		)
		err := sp.run(func() error {
			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			if err != nil {
				return err
			}
			req.Header.Set("accept", "text/xml")
			res, err = http.DefaultClient.Do(req)
			return err
		})
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("xmltok: %s: %s", file, res.Status)
		}
		return res.Body, nil
	default:
		return os.Open(file)
	}
}

// parseNamespaceFlag parses a "prefix=uri" argument, adding it to m.
func parseNamespaceFlag(m map[string]string, arg string) (map[string]string, error) {
	prefix, uri, ok := strings.Cut(arg, "=")
	if !ok {
		return m, fmt.Errorf("namespace binding must be prefix=uri, got %q", arg)
	}
	if m == nil {
		m = make(map[string]string)
	}
	m[prefix] = uri
	return m, nil
}
