package messaging

import (
	"fmt"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

// renderWhen formats the appointment instant on the tenant's wall clock.
// Falls back to UTC if the stored timezone is unexpectedly invalid.
func renderWhen(at time.Time, tz string) (string, string) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	local := at.In(loc)
	return local.Format("02/01/2006"), local.Format("15:04")
}

func confirmationText(mc *repository.MessageContext) string {
	date, hour := renderWhen(mc.ScheduledAt, mc.Timezone)
	return fmt.Sprintf(
		"Hola %s, tu cita de %s con %s en %s quedó confirmada para el %s a las %s.",
		mc.PatientName, mc.ServiceName, mc.ProfessionalName, mc.TenantName, date, hour,
	)
}

func reminderText(mc *repository.MessageContext, hoursBefore int) string {
	date, hour := renderWhen(mc.ScheduledAt, mc.Timezone)
	return fmt.Sprintf(
		"Recordatorio: %s, tu cita de %s con %s en %s es el %s a las %s (en %d horas).",
		mc.PatientName, mc.ServiceName, mc.ProfessionalName, mc.TenantName, date, hour, hoursBefore,
	)
}
