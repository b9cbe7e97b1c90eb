package requestbuilder

import (
	"net/http"
	"net/url"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/fixtures"
)

// BodyKind tags the single body representation chosen for one outbound
// webhook request; the variants are mutually exclusive by construction
type BodyKind int

const (
	// BodyKindJSON sends the fixture payload as a json-encoded body
	BodyKindJSON BodyKind = iota
	// BodyKindMultipart sends a pre-encoded multipart/form-data string verbatim
	BodyKindMultipart
	// BodyKindRawText sends a plain text fixture verbatim; ampersand-bearing
	// fixtures additionally override the computed query parameters
	BodyKindRawText
	// BodyKindQueryEmbedded sends no body and embeds the compact json payload
	// in a query parameter instead
	BodyKindQueryEmbedded
)

var bodyKinds = []string{
	"json",
	"multipart",
	"rawtext",
	"queryembedded",
}

func (k BodyKind) String() string {
	return bodyKinds[k]
}

// RequestDescriptor is a fully specified outbound webhook request
type RequestDescriptor struct {
	Method      string
	URL         string
	QueryParams url.Values
	Headers     http.Header
	Body        []byte
	BodyKind    BodyKind
}

// FullURL returns the request url with all final query parameters appended
// as a single encoded query string
func (d RequestDescriptor) FullURL() string {
	if len(d.QueryParams) == 0 {
		return d.URL
	}

	return d.URL + "?" + d.QueryParams.Encode()
}

// BuildInput carries everything the builder needs to assemble one request
type BuildInput struct {
	Fixture     fixtures.Fixture
	Headers     http.Header
	Config      *api.ScreenshotConfig
	Integration *api.IntegrationConfig
	BaseURL     string
	BotEmail    string
	BotAPIKey   string
}
