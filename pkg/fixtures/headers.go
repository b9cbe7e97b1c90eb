package fixtures

import (
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

const headersFileName = "headers.yaml"

// ResolveHeaders looks up the stored http headers recorded alongside a
// fixture and returns them with normalized names; integrations without a
// headers file or without an entry for the fixture get an empty header set
func ResolveHeaders(fixturesDir, integration, fixtureName string) (headers http.Header, err error) {

	headers = http.Header{}

	if fixtureName == "" {
		return headers, nil
	}

	headersPath := filepath.Join(fixturesDir, integration, headersFileName)

	data, err := os.ReadFile(headersPath)
	if err != nil {
		if os.IsNotExist(err) {
			return headers, nil
		}
		return headers, err
	}

	var stored map[string]map[string]string
	if err = yaml.Unmarshal(data, &stored); err != nil {
		return headers, err
	}

	for name, value := range stored[fixtureName] {
		headers.Set(NormalizeHeaderName(name), value)
	}

	return headers, nil
}

// NormalizeHeaderName translates stored header names, which may use the
// cgi-style HTTP_X_EVENT_KEY convention, into canonical X-Event-Key form
func NormalizeHeaderName(name string) string {
	name = strings.TrimPrefix(name, "HTTP_")
	name = strings.ReplaceAll(name, "_", "-")

	return textproto.CanonicalMIMEHeaderKey(name)
}
