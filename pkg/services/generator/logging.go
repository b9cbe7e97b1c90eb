package generator

import (
	"context"

	"github.com/zerver/zerver-docs-screenshots/pkg/api"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "generator"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) Run(ctx context.Context, selection Selection) (summary RunSummary, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Run", err) }()

	return s.Service.Run(ctx, selection)
}
