package ranger

import (
	"net/http"

	"github.com/xy-planning-network/prestapp/http/resp"
)

const retryAfter = "600"

// MaintModeHandler responds to every request with a 503
// and a JSON message asking clients to retry later.
func MaintModeHandler(d *resp.Responder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", retryAfter)
		err := d.Json(w, r,
			resp.Code(http.StatusServiceUnavailable),
			resp.Data(map[string]string{"message": "prestapp is down for maintenance, please try again shortly"}),
		)
		if err != nil {
			d.Err(w, r, err)
		}
	})
}
