package api

import (
	"fmt"
	"sort"
)

// APIConfig represents the configuration for the entire screenshot generator
type APIConfig struct {
	Server       *ServerConfig        `yaml:"server,omitempty"`
	Integrations []*IntegrationConfig `yaml:"integrations,omitempty"`
}

// ServerConfig holds connection details for the locally running dev server
type ServerConfig struct {
	BaseURL        string `yaml:"baseURL,omitempty" env:"BASE_URL"`
	AdminEmail     string `yaml:"adminEmail,omitempty" env:"ADMIN_EMAIL"`
	AdminAPIKey    string `yaml:"adminAPIKey,omitempty" env:"ADMIN_API_KEY"`
	BotEmailDomain string `yaml:"botEmailDomain,omitempty" env:"BOT_EMAIL_DOMAIN"`
	FixturesDir    string `yaml:"fixturesDir,omitempty" env:"FIXTURES_DIR"`
	ScreenshotTool string `yaml:"screenshotTool,omitempty" env:"SCREENSHOT_TOOL"`
	ImageDir       string `yaml:"imageDir,omitempty" env:"IMAGE_DIR"`
}

// IntegrationConfig represents one integration from the catalog, together
// with the screenshot scenarios documented for it
type IntegrationConfig struct {
	Name           string              `yaml:"name"`
	DisplayName    string              `yaml:"displayName,omitempty"`
	URLPath        string              `yaml:"urlPath,omitempty"`
	DefaultChannel string              `yaml:"defaultChannel,omitempty"`
	AvatarPath     string              `yaml:"avatarPath,omitempty"`
	Screenshots    []*ScreenshotConfig `yaml:"screenshots,omitempty"`
}

// ScreenshotConfig specifies how one documentation screenshot gets generated;
// it either replays a webhook fixture or posts a synthetic channel message
type ScreenshotConfig struct {
	// webhook scenarios
	FixtureName         string            `yaml:"fixtureName,omitempty"`
	ExtraParams         map[string]string `yaml:"extraParams,omitempty"`
	UseBasicAuth        bool              `yaml:"useBasicAuth,omitempty"`
	PayloadAsQueryParam bool              `yaml:"payloadAsQueryParam,omitempty"`
	PayloadParamName    string            `yaml:"payloadParamName,omitempty"`
	CustomHeaders       map[string]string `yaml:"customHeaders,omitempty"`

	// fixtureless scenarios
	Channel string `yaml:"channel,omitempty"`
	Topic   string `yaml:"topic,omitempty"`
	Message string `yaml:"message,omitempty"`

	// shared
	ImageName string `yaml:"imageName,omitempty"`
	ImageDir  string `yaml:"imageDir,omitempty"`
	BotName   string `yaml:"botName,omitempty"`
}

// IsFixtureless indicates whether this scenario posts a synthetic message
// instead of replaying a recorded webhook fixture
func (sc *ScreenshotConfig) IsFixtureless() bool {
	return sc.Message != ""
}

// IsFixtureless indicates whether every scenario of this integration is
// documented via a synthetic message
func (ic *IntegrationConfig) IsFixtureless() bool {
	if len(ic.Screenshots) == 0 {
		return false
	}
	for _, sc := range ic.Screenshots {
		if !sc.IsFixtureless() {
			return false
		}
	}
	return true
}

// SetDefaults fills in all the defaults for empty values
func (c *APIConfig) SetDefaults() {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	c.Server.SetDefaults()

	for _, ic := range c.Integrations {
		ic.SetDefaults()
	}

	// keep batch ordering stable regardless of catalog file ordering
	sort.Slice(c.Integrations, func(i, j int) bool {
		return c.Integrations[i].Name < c.Integrations[j].Name
	})
}

// SetDefaults fills in all the defaults for empty values
func (sc *ServerConfig) SetDefaults() {
	if sc.BaseURL == "" {
		sc.BaseURL = "http://localhost:9991"
	}
	if sc.AdminEmail == "" {
		sc.AdminEmail = "admin@zerver.testserver"
	}
	if sc.BotEmailDomain == "" {
		sc.BotEmailDomain = "zerver.testserver"
	}
	if sc.FixturesDir == "" {
		sc.FixturesDir = "fixtures"
	}
	if sc.ScreenshotTool == "" {
		sc.ScreenshotTool = "tools/message-screenshot.js"
	}
	if sc.ImageDir == "" {
		sc.ImageDir = "static/images/integrations"
	}
}

// SetDefaults fills in all the defaults for empty values
func (ic *IntegrationConfig) SetDefaults() {
	if ic.DisplayName == "" {
		ic.DisplayName = ic.Name
	}
	if ic.URLPath == "" {
		ic.URLPath = fmt.Sprintf("/api/v1/external/%v", ic.Name)
	}
}

// Validate checks whether the config is usable
func (c *APIConfig) Validate() (err error) {
	if c.Server.AdminAPIKey == "" {
		return fmt.Errorf("server.adminAPIKey is required; set it in the config file or via ZDS_ADMIN_API_KEY")
	}

	seen := map[string]bool{}
	for _, ic := range c.Integrations {
		if ic.Name == "" {
			return fmt.Errorf("integration without a name in catalog")
		}
		if seen[ic.Name] {
			return fmt.Errorf("integration %v appears more than once in catalog", ic.Name)
		}
		seen[ic.Name] = true

		for i, sc := range ic.Screenshots {
			if err = sc.Validate(); err != nil {
				return fmt.Errorf("integration %v screenshot %v: %w", ic.Name, i, err)
			}
		}
	}

	return nil
}

// Validate checks that a scenario is either webhook-backed or fixtureless,
// never a mix of the two
func (sc *ScreenshotConfig) Validate() (err error) {
	if sc.FixtureName != "" && sc.Message != "" {
		return fmt.Errorf("fixtureName and message are mutually exclusive")
	}
	if sc.Message != "" && (sc.UseBasicAuth || sc.PayloadAsQueryParam || sc.PayloadParamName != "" || len(sc.ExtraParams) > 0 || len(sc.CustomHeaders) > 0) {
		return fmt.Errorf("webhook options cannot be combined with a fixtureless message")
	}

	return nil
}
