package response

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/pkg/requestctx"
)

func RequestIDFromContext(r *http.Request) string {
	return requestctx.RequestID(r.Context())
}
