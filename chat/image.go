package chat

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/shopmate/orchestrator/domain"
)

// DecodeImagePayload decodes a data-URI style base64 image payload and
// verifies the bytes look like an image. The prefix before the first
// comma, if any, is discarded.
func DecodeImagePayload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewInvalidImageError("image payload is not valid base64", err)
	}
	if len(raw) == 0 || !strings.HasPrefix(http.DetectContentType(raw), "image/") {
		return nil, domain.NewInvalidImageError("payload does not contain an image", nil)
	}
	return raw, nil
}
