package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReservationCode builds the code printed on confirmations, e.g.
// CAMP-20251128-140509-9F3A1C. The suffix comes from the reservation ID.
func GenerateReservationCode(now time.Time, id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
	return fmt.Sprintf("CAMP-%s-%s", now.UTC().Format("20060102-150405"), suffix)
}
