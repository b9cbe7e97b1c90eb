package screenshot

import (
	"context"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
)

// NewLoggingCapturer returns a new instance of a logging Capturer.
func NewLoggingCapturer(c Capturer) Capturer {
	return &loggingCapturer{c, "screenshot"}
}

type loggingCapturer struct {
	Capturer Capturer
	prefix   string
}

func (c *loggingCapturer) Capture(ctx context.Context, spec CaptureSpec) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Capturer", "Capture", err) }()

	return c.Capturer.Capture(ctx, spec)
}
