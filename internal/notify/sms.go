package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"aquasolar-cloud/internal/config"
	"aquasolar-cloud/internal/telemetry"
)

// SMSRequest one outbound message for the gateway.
type SMSRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// SMSResponse gateway acknowledgement.
type SMSResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// SMSClient sends alert notifications through an HTTP SMS gateway to the
// site operator's phone.
type SMSClient struct {
	httpClient  *resty.Client
	sender      string
	adminNumber string
	logger      *zap.Logger
}

func NewSMSClient(cfg config.SMSConfig, logger *zap.Logger) *SMSClient {
	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-API-Key", cfg.APIKey)

	return &SMSClient{
		httpClient:  client,
		sender:      cfg.Sender,
		adminNumber: cfg.AdminNumber,
		logger:      logger,
	}
}

var _ telemetry.Notifier = (*SMSClient)(nil)

// SendAlert delivers one alert text. Callers treat a failure as lost
// best-effort delivery; the alert row itself is already stored.
func (c *SMSClient) SendAlert(ctx context.Context, tenantID, alertType, details string) error {
	request := SMSRequest{
		To:      c.adminNumber,
		From:    c.sender,
		Message: fmt.Sprintf("[AquaSolar] %s alert for %s: %s", alertType, tenantID, details),
	}

	var response SMSResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		SetError(&response).
		Post("/messages")

	if err != nil {
		c.logger.Error("SMS gateway call failed",
			zap.Error(err),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("failed to call SMS gateway: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("SMS gateway returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("error", response.Error),
		)
		return fmt.Errorf("SMS gateway error: %s (status: %d)", response.Error, resp.StatusCode())
	}

	c.logger.Info("Alert SMS sent",
		zap.String("tenant_id", tenantID),
		zap.String("alert_type", alertType),
		zap.String("message_id", response.MessageID),
	)
	return nil
}
