// Package messaging renders an employee's weekly schedule as a chat message.
package messaging

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
)

const (
	countryCode     = "54"
	noLocationName  = "Sin local"
	messageSignoff  = "_Enviado desde MDQApps Turnos_"
	whatsAppBaseURL = "https://wa.me/"
)

// DayNames indexed by time.Weekday
var DayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var nonDigits = regexp.MustCompile(`\D`)

// FormatSchedule builds the message listing shifts for employee. Shifts are
// sorted by date and grouped by location in order of first appearance; the
// location header is only printed when there is more than one.
func FormatSchedule(employee models.Employee, shifts []models.Shift) (string, error) {
	if len(shifts) == 0 {
		return fmt.Sprintf("Hola %s! No tenés turnos asignados.", employee.FirstName), nil
	}

	sorted := make([]models.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var order []string
	byLocation := map[string][]models.Shift{}
	for _, s := range sorted {
		name := noLocationName
		if s.Location != nil && s.Location.Name != "" {
			name = s.Location.Name
		}
		if _, ok := byLocation[name]; !ok {
			order = append(order, name)
		}
		byLocation[name] = append(byLocation[name], s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Hola %s!* 👋\n\n", employee.FirstName)
	b.WriteString("📅 *Tus turnos:*\n\n")

	for _, name := range order {
		if len(order) > 1 {
			fmt.Fprintf(&b, "🏢 *%s*\n", name)
		}
		for _, s := range byLocation[name] {
			fmt.Fprintf(&b, "• %s %s: %s - %s\n",
				DayNames[s.Date.Weekday()], scheduler.DayLabel(s.Date), s.StartTime, s.EndTime)
		}
		b.WriteString("\n")
	}

	total, err := scheduler.TotalHours(shifts)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "⏰ *Total:* %.1f horas\n\n", total)
	b.WriteString(messageSignoff)

	return b.String(), nil
}

// NormalizePhone keeps only digits and prefixes the country code when missing
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(digits, countryCode) {
		return digits
	}
	return countryCode + digits
}

// WhatsAppURL returns a wa.me link that opens a chat with text prefilled
func WhatsAppURL(phone, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return whatsAppBaseURL + NormalizePhone(phone) + "?text=" + escaped
}
