package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SergioM098/Monitoring-proyect/internal/config"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
)

// WhatsAppNotifier posts alerts to an HTTP gateway that relays them as
// WhatsApp messages
type WhatsAppNotifier struct {
	gatewayURL string
	client     *http.Client
}

type whatsappPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewWhatsAppNotifier creates a gateway-backed notifier. It is inert until a
// gateway URL is configured.
func NewWhatsAppNotifier(cfg config.WhatsAppConfig) *WhatsAppNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WhatsAppNotifier{
		gatewayURL: cfg.GatewayURL,
		client:     &http.Client{Timeout: timeout},
	}
}

func (n *WhatsAppNotifier) Kind() string { return notification.KindWhatsApp }

func (n *WhatsAppNotifier) IsReady() bool { return n.gatewayURL != "" }

func (n *WhatsAppNotifier) Send(ctx context.Context, destination, subject, body string) error {
	if n.gatewayURL == "" {
		return fmt.Errorf("whatsapp gateway is not configured")
	}

	payload, err := json.Marshal(whatsappPayload{
		Phone:   destination,
		Message: subject + "\n\n" + body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
