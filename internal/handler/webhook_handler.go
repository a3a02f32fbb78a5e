package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

// signatureHeader carries the hex HMAC-SHA256 of the raw request body
const signatureHeader = "X-Webhook-Signature"

// WebhookHandler receives identity-provider lifecycle events
type WebhookHandler struct {
	profileService service.ProfileService
	signingSecret  string
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(profileService service.ProfileService, signingSecret string) *WebhookHandler {
	return &WebhookHandler{
		profileService: profileService,
		signingSecret:  signingSecret,
	}
}

// Identity handles POST /webhooks/identity. The signature is verified
// against the raw body before any parsing; an invalid or missing signature
// is a 401 regardless of payload.
func (h *WebhookHandler) Identity(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.webhook.identity")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("unreadable body"))
		return
	}

	if !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(response.GetHTTPStatus(response.ErrCodeInvalidSignature),
			response.Error(response.ErrCodeInvalidSignature, "Webhook signature verification failed"))
		return
	}

	var event dto.IdentityWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("malformed event payload"))
		return
	}
	if valid, msg := event.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	if err := h.profileService.HandleIdentityEvent(ctx, &event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(nil))
}

// verifySignature compares the expected body HMAC against the header value
// in constant time
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.signingSecret == "" || signature == "" {
		return false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.signingSecret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
