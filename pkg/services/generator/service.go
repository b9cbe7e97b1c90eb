package generator

import (
	"context"
	"fmt"
	"path/filepath"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
	"github.com/zerver/zerver-docs-screenshots/pkg/clients/zerverapi"
	"github.com/zerver/zerver-docs-screenshots/pkg/fixtures"
	"github.com/zerver/zerver-docs-screenshots/pkg/requestbuilder"
	"github.com/zerver/zerver-docs-screenshots/pkg/screenshot"
)

const fallbackChannel = "devel"

// Service runs documentation screenshot scenarios against the dev server,
// one at a time
//
//go:generate mockgen -package=generator -destination ./mock.go -source=service.go
type Service interface {
	Run(ctx context.Context, selection Selection) (summary RunSummary, err error)
}

// NewService returns a generator.Service wired to the dev server client and
// the capture tool
func NewService(config *api.APIConfig, zerverapiClient zerverapi.Client, capturer screenshot.Capturer) Service {
	return &service{
		config:          config,
		zerverapiClient: zerverapiClient,
		capturer:        capturer,
	}
}

type service struct {
	config          *api.APIConfig
	zerverapiClient zerverapi.Client
	capturer        screenshot.Capturer
}

// Run processes the selected integrations strictly sequentially; a refused
// connection aborts the whole batch, any other scenario failure is recorded
// and the batch continues
func (s *service) Run(ctx context.Context, selection Selection) (summary RunSummary, err error) {

	summary.RunID = uuid.New().String()

	integrations, err := s.selectIntegrations(selection)
	if err != nil {
		return summary, err
	}

	overrides := selection.Overrides
	if overrides.Any() && (selection.Mode != ModeNamed || len(selection.Names) != 1) {
		log.Warn().Str("runId", summary.RunID).Msg("Ignoring per-run override flags; they only apply when running a single named integration")
		overrides = Overrides{}
	}

	for _, integration := range integrations {
		if len(integration.Screenshots) == 0 {
			log.Warn().Str("runId", summary.RunID).Msgf("Integration %v has no screenshot scenarios configured, skipping", integration.Name)
			continue
		}

		for index, configured := range integration.Screenshots {
			scenario, scenarioErr := applyOverrides(configured, overrides)
			if scenarioErr != nil {
				return summary, scenarioErr
			}

			label := scenarioLabel(integration, index)

			log.Info().Str("runId", summary.RunID).Msgf("Generating screenshot for %v...", label)

			if generateErr := s.generate(ctx, integration, scenario); generateErr != nil {
				if errors.Is(generateErr, zerverapi.ErrServerUnavailable) {
					return summary, generateErr
				}

				var statusErr *zerverapi.StatusError
				if errors.As(generateErr, &statusErr) {
					log.Error().Msgf("Request for %v returned status %v, response body: %v", label, statusErr.StatusCode, statusErr.ResponseBody)
				} else {
					log.Error().Err(generateErr).Msgf("Generating screenshot for %v failed", label)
				}

				summary.Failed = append(summary.Failed, label)
				continue
			}

			summary.Succeeded++
		}
	}

	return summary, nil
}

func (s *service) generate(ctx context.Context, integration *api.IntegrationConfig, scenario *api.ScreenshotConfig) (err error) {

	botName := scenario.BotName
	if botName == "" {
		botName = fmt.Sprintf("%v Bot", integration.DisplayName)
	}

	bot, err := s.zerverapiClient.GetOrCreateBot(ctx, botName, integration.AvatarPath)
	if err != nil {
		return err
	}

	channel := scenario.Channel
	if channel == "" {
		channel = integration.DefaultChannel
	}
	if channel == "" {
		channel = fallbackChannel
	}

	if err = s.zerverapiClient.EnsureChannel(ctx, bot, channel); err != nil {
		return err
	}

	// clear prior messages so the most recent message lookup is unambiguous
	if err = s.zerverapiClient.DeleteBotMessages(ctx, bot); err != nil {
		return err
	}

	if scenario.IsFixtureless() {
		topic := scenario.Topic
		if topic == "" {
			topic = integration.DisplayName
		}

		if _, err = s.zerverapiClient.SendChannelMessage(ctx, bot, channel, topic, scenario.Message); err != nil {
			return err
		}
	} else {
		fixture, fixtureErr := fixtures.Load(s.config.Server.FixturesDir, integration.Name, scenario.FixtureName)
		if fixtureErr != nil {
			return fixtureErr
		}

		headers, headersErr := fixtures.ResolveHeaders(s.config.Server.FixturesDir, integration.Name, scenario.FixtureName)
		if headersErr != nil {
			return headersErr
		}

		descriptor, buildErr := requestbuilder.Build(requestbuilder.BuildInput{
			Fixture:     fixture,
			Headers:     headers,
			Config:      scenario,
			Integration: integration,
			BaseURL:     s.config.Server.BaseURL,
			BotEmail:    bot.Email,
			BotAPIKey:   bot.APIKey,
		})
		if buildErr != nil {
			return buildErr
		}

		if _, err = s.zerverapiClient.SendWebhook(ctx, descriptor); err != nil {
			return err
		}
	}

	message, err := s.zerverapiClient.GetLastBotMessage(ctx, bot)
	if err != nil {
		if errors.Is(err, zerverapi.ErrMessageNotFound) {
			log.Warn().Msgf("No message from bot %v after dispatch, skipping screenshot for %v", bot.Email, integration.Name)
			return nil
		}
		return err
	}

	imagePath := s.imagePath(integration, scenario)

	if err = s.capturer.Capture(ctx, screenshot.CaptureSpec{
		MessageID: message.ID,
		RealmURL:  s.config.Server.BaseURL,
		BotEmail:  bot.Email,
		ImagePath: imagePath,
	}); err != nil {
		return err
	}

	log.Info().Msgf("Saved screenshot to %v", imagePath)

	return nil
}

func (s *service) selectIntegrations(selection Selection) (integrations []*api.IntegrationConfig, err error) {

	switch selection.Mode {
	case ModeAll:
		return s.config.Integrations, nil

	case ModeWebhook:
		for _, integration := range s.config.Integrations {
			if !integration.IsFixtureless() {
				integrations = append(integrations, integration)
			}
		}
		return integrations, nil

	case ModeFixtureless:
		for _, integration := range s.config.Integrations {
			if integration.IsFixtureless() {
				integrations = append(integrations, integration)
			}
		}
		return integrations, nil

	case ModeSkipUntil:
		reached := false
		for _, integration := range s.config.Integrations {
			if integration.Name == selection.SkipUntil {
				reached = true
			}
			if reached {
				integrations = append(integrations, integration)
			}
		}
		if !reached {
			return nil, errors.Errorf("integration %v is not in the catalog", selection.SkipUntil)
		}
		return integrations, nil

	case ModeNamed:
		for _, name := range selection.Names {
			found := false
			for _, integration := range s.config.Integrations {
				if integration.Name == name {
					found = true
					break
				}
			}
			if !found {
				return nil, errors.Errorf("integration %v is not in the catalog", name)
			}
		}
		for _, integration := range s.config.Integrations {
			if foundation.StringArrayContains(selection.Names, integration.Name) {
				integrations = append(integrations, integration)
			}
		}
		return integrations, nil
	}

	return nil, errors.Errorf("unsupported selection mode %v", selection.Mode)
}

func (s *service) imagePath(integration *api.IntegrationConfig, scenario *api.ScreenshotConfig) string {

	imageDir := scenario.ImageDir
	if imageDir == "" {
		imageDir = s.config.Server.ImageDir
	}

	imageName := scenario.ImageName
	if imageName == "" {
		imageName = foundation.ToLowerSnakeCase(integration.Name) + ".png"
	}

	return filepath.Join(imageDir, integration.Name, imageName)
}

func applyOverrides(configured *api.ScreenshotConfig, overrides Overrides) (scenario *api.ScreenshotConfig, err error) {

	// deep-copy so per-run customizations never leak back into the catalog
	scenario = &api.ScreenshotConfig{}
	if err = copier.CopyWithOption(scenario, configured, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return nil, err
	}

	if !overrides.Any() {
		return scenario, nil
	}

	if overrides.FixtureName != "" {
		scenario.FixtureName = overrides.FixtureName
		scenario.Message = ""
	}
	if overrides.UseBasicAuth {
		scenario.UseBasicAuth = true
	}
	if overrides.PayloadAsQueryParam {
		scenario.PayloadAsQueryParam = true
	}
	if overrides.PayloadParamName != "" {
		scenario.PayloadParamName = overrides.PayloadParamName
	}
	if len(overrides.CustomHeaders) > 0 {
		scenario.CustomHeaders = overrides.CustomHeaders
	}
	if overrides.Message != "" {
		scenario.Message = overrides.Message
		scenario.FixtureName = ""
	}
	if overrides.Channel != "" {
		scenario.Channel = overrides.Channel
	}
	if overrides.Topic != "" {
		scenario.Topic = overrides.Topic
	}
	if overrides.ImageName != "" {
		scenario.ImageName = overrides.ImageName
	}
	if overrides.ImageDir != "" {
		scenario.ImageDir = overrides.ImageDir
	}
	if overrides.BotName != "" {
		scenario.BotName = overrides.BotName
	}

	if err = scenario.Validate(); err != nil {
		return nil, err
	}

	return scenario, nil
}

func scenarioLabel(integration *api.IntegrationConfig, index int) string {
	if len(integration.Screenshots) == 1 {
		return integration.Name
	}

	return fmt.Sprintf("%v[%v]", integration.Name, index)
}
