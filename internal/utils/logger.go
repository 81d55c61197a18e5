// Package utils holds small helpers shared by the services and handlers.
package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line for an admin-side event. module is
// the emitting subsystem (audit, import, reports), action names the
// operation. Messages stay short summaries; row payloads never go to the
// log.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(strings.TrimSpace(module)), action, req, strings.TrimSpace(message))
}
