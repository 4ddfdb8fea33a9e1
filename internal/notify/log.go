package notify

import (
	"context"

	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

// LogSender only records the nomination. Used when no delivery backend is
// configured, e.g. local development.
type LogSender struct {
	logger logrus.FieldLogger
}

func NewLogSender(logger logrus.FieldLogger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) NotifyNomination(ctx context.Context, nomination types.NominationForm) error {
	s.logger.WithFields(logrus.Fields{
		"entrepreneur_name": nomination.EntrepreneurName,
		"business_name":     nomination.BusinessName,
	}).Info("nomination notification skipped, no backend configured")
	return nil
}
