package telephony

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/client"

	"voice-mentor/pkg/logger"
)

const signatureHeader = "X-Twilio-Signature"

// RequireTwilioSignature rejects webhook requests whose X-Twilio-Signature does not
// match the public URL and body. publicBaseURL must be the origin Twilio dialed
// (BASE_URL), since the request URL seen behind a proxy differs.
func RequireTwilioSignature(authToken, publicBaseURL string) gin.HandlerFunc {
	validator := client.NewRequestValidator(authToken)
	base := strings.TrimRight(publicBaseURL, "/")

	return func(c *gin.Context) {
		log := logger.FromGin(c)

		sig := c.GetHeader(signatureHeader)
		if sig == "" {
			log.Warn("twilio signature missing")
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		fullURL := base + c.Request.URL.RequestURI()

		var ok bool
		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if mediaType == "application/json" {
			ok = validator.ValidateBody(fullURL, raw, sig)
		} else {
			form, err := url.ParseQuery(string(raw))
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			params := make(map[string]string, len(form))
			for k, vs := range form {
				if len(vs) > 0 {
					params[k] = vs[0]
				}
			}
			ok = validator.Validate(fullURL, params, sig)
		}

		if !ok {
			log.Warn("twilio signature mismatch", "path", c.Request.URL.Path)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
