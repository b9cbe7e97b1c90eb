package requestbuilder

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/zerver/zerver-docs-screenshots/pkg/fixtures"
)

const (
	defaultChannel          = "devel"
	defaultPayloadParamName = "payload"
)

// Build assembles the final outbound request for one webhook scenario: base
// query parameters, merged headers, and exactly one body representation
func Build(input BuildInput) (descriptor RequestDescriptor, err error) {

	descriptor.Method = http.MethodPost
	descriptor.URL = strings.TrimSuffix(input.BaseURL, "/") + input.Integration.URLPath

	// base query parameters: api key plus target channel
	query := url.Values{}
	query.Set("api_key", input.BotAPIKey)

	channel := input.Integration.DefaultChannel
	if channel == "" {
		channel = defaultChannel
	}
	query.Set("stream", channel)

	// static extra parameters declared by the scenario win on key collision
	for name, value := range input.Config.ExtraParams {
		query.Set(name, value)
	}

	// resolved fixture headers first, then custom headers override same names
	headers := http.Header{}
	for name, values := range input.Headers {
		for _, value := range values {
			headers.Add(name, value)
		}
	}
	for name, value := range input.Config.CustomHeaders {
		headers.Set(fixtures.NormalizeHeaderName(name), value)
	}

	switch {
	case input.Fixture.Format == fixtures.FormatMultipart:
		descriptor.BodyKind = BodyKindMultipart
		descriptor.Body = []byte(input.Fixture.Text)

		// the server cannot parse the body without the boundary, so derive it
		// from the fixture's first delimiter line unless headers already carry it
		if boundary := multipartBoundary(input.Fixture.Text); boundary != "" {
			setDefaultContentType(headers, fmt.Sprintf("multipart/form-data; boundary=%v", boundary))
		}

	case input.Fixture.Format == fixtures.FormatText && input.Fixture.Text != "":
		descriptor.BodyKind = BodyKindRawText
		descriptor.Body = []byte(input.Fixture.Text)

		if strings.Contains(input.Fixture.Text, "&") {
			// ampersand-bearing plain text is authored as url-encoded pairs;
			// the fixture's own parameters override anything computed so far
			fixtureParams, parseErr := url.ParseQuery(input.Fixture.Text)
			if parseErr != nil {
				return descriptor, errors.Wrapf(parseErr, "fixture %v does not parse as url-encoded parameters", input.Fixture.Name)
			}
			for name, values := range fixtureParams {
				query[name] = values
			}
			setDefaultContentType(headers, "application/x-www-form-urlencoded")
		} else {
			setDefaultContentType(headers, "text/plain")
		}

	case input.Config.PayloadAsQueryParam:
		descriptor.BodyKind = BodyKindQueryEmbedded

		paramName := input.Config.PayloadParamName
		if paramName == "" {
			paramName = defaultPayloadParamName
		}

		compact, marshalErr := json.Marshal(input.Fixture.Parsed)
		if marshalErr != nil {
			return descriptor, errors.Wrapf(marshalErr, "fixture %v cannot be embedded as query parameter", input.Fixture.Name)
		}
		query.Set(paramName, string(compact))

	default:
		descriptor.BodyKind = BodyKindJSON
		if input.Fixture.Parsed == nil {
			descriptor.Body = []byte("{}")
		} else {
			descriptor.Body, err = json.Marshal(input.Fixture.Parsed)
			if err != nil {
				return descriptor, errors.Wrapf(err, "fixture %v cannot be encoded as json body", input.Fixture.Name)
			}
		}
		setDefaultContentType(headers, "application/json")
	}

	// basic auth injection happens after all header merging and wins over any
	// same-named custom header
	if input.Config.UseBasicAuth {
		credentials := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%v:%v", input.BotEmail, input.BotAPIKey)))
		headers.Set("Authorization", fmt.Sprintf("basic %v", credentials))
	}

	descriptor.QueryParams = query
	descriptor.Headers = headers

	return descriptor, nil
}

// multipartBoundary extracts the boundary from the opening delimiter line of
// a pre-encoded multipart body; an empty result means the fixture does not
// start with a delimiter
func multipartBoundary(body string) string {
	firstLine, _, _ := strings.Cut(body, "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	if !strings.HasPrefix(firstLine, "--") {
		return ""
	}

	return strings.TrimPrefix(firstLine, "--")
}

func setDefaultContentType(headers http.Header, contentType string) {
	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", contentType)
	}
}
