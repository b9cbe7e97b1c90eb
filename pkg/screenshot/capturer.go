package screenshot

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// CaptureSpec identifies the message to photograph and where to store the image
type CaptureSpec struct {
	MessageID int64
	RealmURL  string
	BotEmail  string
	ImagePath string
}

// Capturer invokes the external browser-automation tool that photographs a
// single message; the tool itself is a black box to this generator
//
//go:generate mockgen -package=screenshot -destination ./mock.go -source=capturer.go
type Capturer interface {
	Capture(ctx context.Context, spec CaptureSpec) (err error)
}

// NewCapturer returns a screenshot.Capturer shelling out to the given tool script
func NewCapturer(toolPath string) Capturer {
	return &capturer{
		toolPath: toolPath,
	}
}

type capturer struct {
	toolPath string
}

// Capture runs the capture tool for one message and waits for it to finish
func (c *capturer) Capture(ctx context.Context, spec CaptureSpec) (err error) {

	if err = os.MkdirAll(filepath.Dir(spec.ImagePath), 0755); err != nil {
		return err
	}

	command := exec.CommandContext(ctx, "node", c.toolPath,
		"--message-id", strconv.FormatInt(spec.MessageID, 10),
		"--realm-url", spec.RealmURL,
		"--bot-email", spec.BotEmail,
		"--image-path", spec.ImagePath,
	)

	output, err := command.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "capture tool %v failed: %v", c.toolPath, string(output))
	}

	return nil
}
