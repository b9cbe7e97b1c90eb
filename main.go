package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/clients/zerverapi"
	"github.com/zerver/zerver-docs-screenshots/pkg/fixtures"
	"github.com/zerver/zerver-docs-screenshots/pkg/screenshot"
	"github.com/zerver/zerver-docs-screenshots/pkg/services/generator"
)

var (
	appgroup  string
	app       string
	version   string
	branch    string
	revision  string
	buildDate string
)

var (
	// flags
	runAll            = kingpin.Flag("all", "Generate screenshots for every integration in the catalog.").Bool()
	runAllWebhook     = kingpin.Flag("all-webhook", "Generate screenshots for webhook-backed integrations only.").Bool()
	runAllFixtureless = kingpin.Flag("all-fixtureless", "Generate screenshots for fixtureless integrations only.").Bool()
	skipUntilName     = kingpin.Flag("skip-until", "Generate screenshots for every integration from the named one onward, in catalog order.").String()
	integrationNames  = kingpin.Flag("integration", "Generate screenshots for the named integration; repeat the flag for several.").Strings()
	listCatalog       = kingpin.Flag("list", "Print the integrations catalog and exit.").Bool()

	configPath = kingpin.Flag("config", "Path to the integrations catalog file.").Default("integrations.yaml").Envar("ZDS_CONFIG").String()

	imageName = kingpin.Flag("image-name", "File name for the generated screenshot, overriding the configured one.").String()
	imageDir  = kingpin.Flag("image-dir", "Directory to store the generated screenshot in, overriding the configured one.").String()
	botName   = kingpin.Flag("bot-name", "Display name for the bot sending the message, overriding the configured one.").String()

	fixtureName         = kingpin.Flag("fixture-name", "Fixture file to replay, overriding the configured one.").String()
	useBasicAuth        = kingpin.Flag("use-basic-auth", "Authenticate the webhook request with http basic auth instead of the api_key query parameter.").Short('A').Bool()
	payloadAsQueryParam = kingpin.Flag("payload-as-query-param", "Embed the fixture payload in a query parameter instead of the request body.").Short('Q').Bool()
	payloadParamName    = kingpin.Flag("payload-param-name", "Name of the query parameter to embed the fixture payload in.").Short('P').String()
	customHeaders       = kingpin.Flag("custom-headers", "Custom http headers for the webhook request as a json object string.").Short('H').String()

	messageTopic   = kingpin.Flag("topic", "Topic for the fixtureless channel message, overriding the configured one.").Short('T').String()
	messageContent = kingpin.Flag("message", "Content for the fixtureless channel message, overriding the configured one.").Short('M').String()
	messageChannel = kingpin.Flag("channel", "Channel for the fixtureless channel message, overriding the configured one.").Short('C').String()
)

func main() {

	// load environment variables from a local .env file if present
	_ = godotenv.Load()

	// parse command line parameters
	kingpin.Parse()

	// init log handling
	foundation.InitLoggingFromEnv(foundation.NewApplicationInfo(appgroup, app, version, branch, revision, buildDate))

	configReader := api.NewConfigReader()
	config, err := configReader.ReadConfigFromFile(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed reading integrations catalog from %v", *configPath)
	}

	// listing the catalog needs no run mode and never touches the server
	if *listCatalog {
		printCatalog(os.Stdout, config)
		return
	}

	customHeadersMap, err := parseCustomHeaders(*customHeaders)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed parsing --custom-headers; pass a json object string and mind your shell quoting, e.g. -H '{\"X-Event-Key\": \"issue:created\"}'")
	}

	selection, err := generator.NewSelection(*runAll, *runAllWebhook, *runAllFixtureless, *skipUntilName, *integrationNames, generator.Overrides{
		ImageName:           *imageName,
		ImageDir:            *imageDir,
		BotName:             *botName,
		FixtureName:         *fixtureName,
		UseBasicAuth:        *useBasicAuth,
		PayloadAsQueryParam: *payloadAsQueryParam,
		PayloadParamName:    *payloadParamName,
		CustomHeaders:       customHeadersMap,
		Channel:             *messageChannel,
		Topic:               *messageTopic,
		Message:             *messageContent,
	})
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	zerverapiClient := zerverapi.NewLoggingClient(zerverapi.NewClient(config))
	screenshotCapturer := screenshot.NewLoggingCapturer(screenshot.NewCapturer(config.Server.ScreenshotTool))
	generatorService := generator.NewLoggingService(generator.NewService(config, zerverapiClient, screenshotCapturer))

	summary, err := generatorService.Run(context.Background(), selection)
	if err != nil {
		if errors.Is(err, zerverapi.ErrServerUnavailable) {
			log.Fatal().Err(err).Msgf("Cannot reach the dev server at %v; start it before generating screenshots", config.Server.BaseURL)
		}
		log.Fatal().Err(err).Msg("Generating screenshots failed")
	}

	if len(summary.Failed) > 0 {
		log.Warn().
			Str("runID", summary.RunID).
			Msgf("Finished run with %v succeeded and %v failed scenarios: %v", summary.Succeeded, len(summary.Failed), strings.Join(summary.Failed, ", "))
		return
	}

	log.Info().
		Str("runID", summary.RunID).
		Msgf("Finished generating %v screenshots", summary.Succeeded)
}

// parseCustomHeaders turns the --custom-headers json object string into a
// header map with canonicalized header names.
func parseCustomHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.Wrap(err, "Invalid custom headers json")
	}

	headers := make(map[string]string, len(parsed))
	for name, value := range parsed {
		headers[fixtures.NormalizeHeaderName(name)] = value
	}

	return headers, nil
}

func printCatalog(w io.Writer, config *api.APIConfig) {
	for _, integration := range config.Integrations {
		kind := "webhook"
		if integration.IsFixtureless() {
			kind = "fixtureless"
		}
		fmt.Fprintf(w, "%-30v %-12v %v scenario(s)\n", integration.Name, kind, len(integration.Screenshots))
	}
}
