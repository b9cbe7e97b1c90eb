package generator

import (
	"github.com/pkg/errors"
)

// Mode selects which integrations one batch invocation processes
type Mode int

const (
	// ModeAll runs every integration in the catalog
	ModeAll Mode = iota
	// ModeWebhook runs only webhook-backed integrations
	ModeWebhook
	// ModeFixtureless runs only integrations documented via synthetic messages
	ModeFixtureless
	// ModeSkipUntil runs everything from a named integration onward
	ModeSkipUntil
	// ModeNamed runs one or more explicitly named integrations
	ModeNamed
)

var modes = []string{
	"all",
	"webhook",
	"fixtureless",
	"skipuntil",
	"named",
}

func (m Mode) String() string {
	return modes[m]
}

// Overrides are ad-hoc per-run customizations passed on the command line;
// they only apply when a single named integration is run
type Overrides struct {
	FixtureName         string
	UseBasicAuth        bool
	PayloadAsQueryParam bool
	PayloadParamName    string
	CustomHeaders       map[string]string
	Channel             string
	Topic               string
	Message             string
	ImageName           string
	ImageDir            string
	BotName             string
}

// Any indicates whether any override was set at all
func (o Overrides) Any() bool {
	return o.FixtureName != "" ||
		o.UseBasicAuth ||
		o.PayloadAsQueryParam ||
		o.PayloadParamName != "" ||
		len(o.CustomHeaders) > 0 ||
		o.Channel != "" ||
		o.Topic != "" ||
		o.Message != "" ||
		o.ImageName != "" ||
		o.ImageDir != "" ||
		o.BotName != ""
}

// Selection is the validated work list specification for one batch invocation
type Selection struct {
	Mode      Mode
	SkipUntil string
	Names     []string
	Overrides Overrides
}

// NewSelection validates the mutually exclusive mode flags and returns the
// resulting selection; conflicts are rejected before any work starts
func NewSelection(all, allWebhook, allFixtureless bool, skipUntil string, names []string, overrides Overrides) (selection Selection, err error) {

	selection.Overrides = overrides

	modesChosen := 0
	if all {
		selection.Mode = ModeAll
		modesChosen++
	}
	if allWebhook {
		selection.Mode = ModeWebhook
		modesChosen++
	}
	if allFixtureless {
		selection.Mode = ModeFixtureless
		modesChosen++
	}
	if skipUntil != "" {
		selection.Mode = ModeSkipUntil
		selection.SkipUntil = skipUntil
		modesChosen++
	}
	if len(names) > 0 {
		selection.Mode = ModeNamed
		selection.Names = names
		modesChosen++
	}

	if modesChosen == 0 {
		return selection, errors.New("choose one of --all, --all-webhook, --all-fixtureless, --skip-until or --integration")
	}
	if modesChosen > 1 {
		return selection, errors.New("--all, --all-webhook, --all-fixtureless, --skip-until and --integration are mutually exclusive")
	}

	return selection, nil
}

// RunSummary reports the outcome of one batch invocation
type RunSummary struct {
	RunID     string
	Succeeded int
	Failed    []string
}
