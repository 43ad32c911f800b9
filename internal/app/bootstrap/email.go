package bootstrap

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/notify"
	"github.com/carebridge/medchat/pkg/logging"
)

// BuildEmailSender resolves EMAIL_PROVIDER into a sender. awsCfg may be nil
// when no AWS-backed component is configured; SES then degrades to the stub.
func BuildEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) (notify.EmailSender, string) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil {
		return notify.NewStubEmailSender(logger), notify.ProviderStub
	}

	hasKey := strings.TrimSpace(cfg.SendGridAPIKey) != ""
	hasSES := strings.TrimSpace(cfg.SESFromEmail) != "" && awsCfg != nil
	provider := notify.SelectProvider(cfg.EmailProvider, hasKey, hasSES)

	switch provider {
	case notify.ProviderSendGrid:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email provider selected", "provider", provider)
			return sender, provider
		}
	case notify.ProviderSES:
		sender := notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email provider selected", "provider", provider, "region", awsCfg.Region)
			return sender, provider
		}
	}

	logger.Warn("no email provider configured; confirmations are logged only", "requested", cfg.EmailProvider)
	return notify.NewStubEmailSender(logger), notify.ProviderStub
}
