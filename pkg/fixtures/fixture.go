package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Format indicates how the fixture file contents should be interpreted when
// building the outbound webhook request
type Format int

const (
	// FormatEmpty means no fixture was referenced; it still dispatches as an
	// empty json body
	FormatEmpty Format = iota
	// FormatJSON is a parsed json payload
	FormatJSON
	// FormatMultipart is a pre-encoded multipart/form-data request body
	FormatMultipart
	// FormatText is a plain text payload, either a raw body or url-encoded
	// key-value pairs
	FormatText
)

// ErrFixtureNotFound is returned when the referenced fixture file does not exist
var ErrFixtureNotFound = errors.New("Fixture file does not exist")

// Fixture is the in-memory payload of one recorded webhook call
type Fixture struct {
	Name   string
	Path   string
	Format Format
	Parsed interface{}
	Text   string
}

// Load reads a named fixture file for an integration and returns its parsed
// payload plus format; an empty fixture name yields an empty fixture
func Load(fixturesDir, integration, fixtureName string) (fixture Fixture, err error) {

	fixture.Name = fixtureName
	if fixtureName == "" {
		return fixture, nil
	}

	fixture.Path = filepath.Join(fixturesDir, integration, fixtureName)

	data, err := os.ReadFile(fixture.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return fixture, errors.Wrapf(ErrFixtureNotFound, "fixture %v for integration %v (looked in %v)", fixtureName, integration, fixture.Path)
		}
		return fixture, err
	}

	switch filepath.Ext(fixtureName) {
	case ".json":
		fixture.Format = FormatJSON
		if err = json.Unmarshal(data, &fixture.Parsed); err != nil {
			return fixture, errors.Wrapf(err, "fixture %v is not valid json", fixture.Path)
		}
	case ".multipart":
		fixture.Format = FormatMultipart
		fixture.Text = string(data)
	default:
		fixture.Format = FormatText
		fixture.Text = string(data)
	}

	return fixture, nil
}
