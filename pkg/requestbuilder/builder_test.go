package requestbuilder

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/fixtures"
)

func getBuildInput() BuildInput {
	return BuildInput{
		Fixture: fixtures.Fixture{
			Name:   "service_notify.json",
			Format: fixtures.FormatJSON,
			Parsed: map[string]interface{}{
				"state": "CRITICAL",
				"type":  "PROBLEM",
			},
		},
		Headers: http.Header{},
		Config:  &api.ScreenshotConfig{FixtureName: "service_notify.json"},
		Integration: &api.IntegrationConfig{
			Name:           "nagios",
			DefaultChannel: "nagios",
			URLPath:        "/api/v1/external/nagios",
		},
		BaseURL:   "http://localhost:9991",
		BotEmail:  "nagios-bot@zerver.testserver",
		BotAPIKey: "abc123",
	}
}

func TestBuild(t *testing.T) {

	t.Run("SendsJsonFixtureAsJsonBody", func(t *testing.T) {

		input := getBuildInput()

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindJSON, descriptor.BodyKind)
		assert.Equal(t, `{"state":"CRITICAL","type":"PROBLEM"}`, string(descriptor.Body))
		assert.Equal(t, "application/json", descriptor.Headers.Get("Content-Type"))
	})

	t.Run("SetsBaseQueryParameters", func(t *testing.T) {

		input := getBuildInput()

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "abc123", descriptor.QueryParams.Get("api_key"))
		assert.Equal(t, "nagios", descriptor.QueryParams.Get("stream"))
		assert.Equal(t, http.MethodPost, descriptor.Method)
	})

	t.Run("DefaultsChannelToDevelWhenIntegrationDefinesNone", func(t *testing.T) {

		input := getBuildInput()
		input.Integration.DefaultChannel = ""

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "devel", descriptor.QueryParams.Get("stream"))
	})

	t.Run("ExtraParamsWinOverBaseParameters", func(t *testing.T) {

		input := getBuildInput()
		input.Config.ExtraParams = map[string]string{"stream": "alerts", "severity": "high"}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "alerts", descriptor.QueryParams.Get("stream"))
		assert.Equal(t, "high", descriptor.QueryParams.Get("severity"))
	})

	t.Run("SendsMultipartFixtureVerbatim", func(t *testing.T) {

		input := getBuildInput()
		input.Fixture = fixtures.Fixture{
			Name:   "signatures.multipart",
			Format: fixtures.FormatMultipart,
			Text:   "--boundary\r\nContent-Disposition: form-data; name=\"json\"\r\n\r\n{}\r\n--boundary--",
		}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindMultipart, descriptor.BodyKind)
		assert.Equal(t, input.Fixture.Text, string(descriptor.Body))
		assert.Equal(t, "abc123", descriptor.QueryParams.Get("api_key"))
	})

	t.Run("DerivesMultipartContentTypeFromFixtureBoundary", func(t *testing.T) {

		input := getBuildInput()
		input.Fixture = fixtures.Fixture{
			Name:   "signatures.multipart",
			Format: fixtures.FormatMultipart,
			Text:   "--boundary\r\nContent-Disposition: form-data; name=\"json\"\r\n\r\n{}\r\n--boundary--",
		}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "multipart/form-data; boundary=boundary", descriptor.Headers.Get("Content-Type"))
	})

	t.Run("KeepsCustomContentTypeForMultipartFixture", func(t *testing.T) {

		input := getBuildInput()
		input.Fixture = fixtures.Fixture{
			Name:   "signatures.multipart",
			Format: fixtures.FormatMultipart,
			Text:   "--boundary\r\nContent-Disposition: form-data; name=\"json\"\r\n\r\n{}\r\n--boundary--",
		}
		input.Config.CustomHeaders = map[string]string{"Content-Type": "multipart/form-data; boundary=stored"}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "multipart/form-data; boundary=stored", descriptor.Headers.Get("Content-Type"))
	})

	t.Run("AmpersandTextFixtureOverridesComputedParameters", func(t *testing.T) {

		input := getBuildInput()
		input.Config.ExtraParams = map[string]string{"a": "0"}
		input.Fixture = fixtures.Fixture{
			Name:   "short_post.txt",
			Format: fixtures.FormatText,
			Text:   "a=1&b=2",
		}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindRawText, descriptor.BodyKind)
		assert.Equal(t, "1", descriptor.QueryParams.Get("a"))
		assert.Equal(t, "2", descriptor.QueryParams.Get("b"))
		assert.Equal(t, "application/x-www-form-urlencoded", descriptor.Headers.Get("Content-Type"))
	})

	t.Run("PlainTextFixtureIsSentVerbatimWithoutParameterMerging", func(t *testing.T) {

		input := getBuildInput()
		input.Fixture = fixtures.Fixture{
			Name:   "alert.txt",
			Format: fixtures.FormatText,
			Text:   "hello world",
		}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindRawText, descriptor.BodyKind)
		assert.Equal(t, "hello world", string(descriptor.Body))
		assert.Equal(t, 2, len(descriptor.QueryParams))
		assert.Equal(t, "text/plain", descriptor.Headers.Get("Content-Type"))
	})

	t.Run("EmbedsCompactJsonInQueryParameterWithoutBody", func(t *testing.T) {

		input := getBuildInput()
		input.Config.PayloadAsQueryParam = true
		input.Config.PayloadParamName = "payload"

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindQueryEmbedded, descriptor.BodyKind)
		assert.Equal(t, `{"state":"CRITICAL","type":"PROBLEM"}`, descriptor.QueryParams.Get("payload"))
		assert.Nil(t, descriptor.Body)
	})

	t.Run("DefaultsPayloadParamNameToPayload", func(t *testing.T) {

		input := getBuildInput()
		input.Config.PayloadAsQueryParam = true

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.NotEmpty(t, descriptor.QueryParams.Get("payload"))
	})

	t.Run("SendsEmptyFixtureAsEmptyJsonBody", func(t *testing.T) {

		input := getBuildInput()
		input.Fixture = fixtures.Fixture{Format: fixtures.FormatEmpty}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, BodyKindJSON, descriptor.BodyKind)
		assert.Equal(t, "{}", string(descriptor.Body))
	})

	t.Run("CustomHeadersOverrideResolvedHeaders", func(t *testing.T) {

		input := getBuildInput()
		input.Headers = http.Header{"X-Event-Key": []string{"stored"}}
		input.Config.CustomHeaders = map[string]string{"HTTP_X_EVENT_KEY": "custom"}

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "custom", descriptor.Headers.Get("X-Event-Key"))
	})

	t.Run("BasicAuthWinsOverCustomAuthorizationHeader", func(t *testing.T) {

		input := getBuildInput()
		input.Config.UseBasicAuth = true
		input.Config.CustomHeaders = map[string]string{"Authorization": "Bearer something-else"}

		expectedCredentials := base64.StdEncoding.EncodeToString([]byte("nagios-bot@zerver.testserver:abc123"))

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "basic "+expectedCredentials, descriptor.Headers.Get("Authorization"))
	})

	t.Run("SelectsExactlyOneBodyKindPerFixtureFormat", func(t *testing.T) {

		cases := []struct {
			fixture      fixtures.Fixture
			expectedKind BodyKind
		}{
			{fixtures.Fixture{Format: fixtures.FormatJSON, Parsed: map[string]interface{}{}}, BodyKindJSON},
			{fixtures.Fixture{Format: fixtures.FormatMultipart, Text: "--b--"}, BodyKindMultipart},
			{fixtures.Fixture{Format: fixtures.FormatText, Text: "a=1&b=2"}, BodyKindRawText},
			{fixtures.Fixture{Format: fixtures.FormatText, Text: "plain"}, BodyKindRawText},
			{fixtures.Fixture{Format: fixtures.FormatEmpty}, BodyKindJSON},
		}

		for _, c := range cases {
			input := getBuildInput()
			input.Fixture = c.fixture

			// act
			descriptor, err := Build(input)

			assert.Nil(t, err)
			assert.Equal(t, c.expectedKind, descriptor.BodyKind, "fixture format %v", c.fixture.Format)
		}
	})

	t.Run("AppendsQueryParametersAsSingleEncodedString", func(t *testing.T) {

		input := getBuildInput()

		// act
		descriptor, err := Build(input)

		assert.Nil(t, err)
		assert.Equal(t, "http://localhost:9991/api/v1/external/nagios?api_key=abc123&stream=nagios", descriptor.FullURL())
	})
}
