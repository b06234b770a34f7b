package messaging

import (
	"strings"
	"testing"
	"time"

	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatSchedule_Empty(t *testing.T) {
	msg, err := FormatSchedule(models.Employee{FirstName: "Ana", LastName: "Zapata"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hola Ana! No tenés turnos asignados.", msg)
}

func TestFormatSchedule_SingleLocation(t *testing.T) {
	centro := &models.Location{Name: "Centro"}
	shifts := []models.Shift{
		{Date: day(6), StartTime: "14:00", EndTime: "18:30", Location: centro},
		{Date: day(4), StartTime: "09:00", EndTime: "13:00", Location: centro},
	}

	msg, err := FormatSchedule(models.Employee{FirstName: "Ana"}, shifts)
	require.NoError(t, err)

	expected := "*Hola Ana!* 👋\n\n" +
		"📅 *Tus turnos:*\n\n" +
		"• Lunes 04/03: 09:00 - 13:00\n" +
		"• Miércoles 06/03: 14:00 - 18:30\n" +
		"\n" +
		"⏰ *Total:* 8.5 horas\n\n" +
		"_Enviado desde MDQApps Turnos_"
	assert.Equal(t, expected, msg)
}

func TestFormatSchedule_GroupsByLocation(t *testing.T) {
	shifts := []models.Shift{
		{Date: day(4), StartTime: "09:00", EndTime: "13:00", Location: &models.Location{Name: "Centro"}},
		{Date: day(5), StartTime: "09:00", EndTime: "13:00", Location: &models.Location{Name: "Puerto"}},
		{Date: day(10), StartTime: "10:00", EndTime: "12:00"},
		{Date: day(7), StartTime: "15:00", EndTime: "19:00", Location: &models.Location{Name: "Centro"}},
	}

	msg, err := FormatSchedule(models.Employee{FirstName: "Bruno"}, shifts)
	require.NoError(t, err)

	centro := strings.Index(msg, "🏢 *Centro*")
	puerto := strings.Index(msg, "🏢 *Puerto*")
	sinLocal := strings.Index(msg, "🏢 *Sin local*")
	assert.True(t, centro >= 0 && puerto > centro && sinLocal > puerto, "groups follow first appearance by date")
	assert.Contains(t, msg, "• Jueves 07/03: 15:00 - 19:00")
	assert.Contains(t, msg, "• Domingo 10/03: 10:00 - 12:00")
	assert.Contains(t, msg, "⏰ *Total:* 14.0 horas")
}

func TestFormatSchedule_BadClock(t *testing.T) {
	_, err := FormatSchedule(models.Employee{FirstName: "Ana"}, []models.Shift{{Date: day(4), StartTime: "9", EndTime: "13:00"}})
	assert.Error(t, err)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"223 555-1234", "542235551234"},
		{"+54 9 223 555 1234", "5492235551234"},
		{"(0223) 15-555-1234", "540223155551234"},
		{"", "54"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), tt.in)
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("223 555-1234", "Hola Ana! 8 horas & más")
	assert.Equal(t, "https://wa.me/542235551234?text=Hola%20Ana%21%208%20horas%20%26%20m%C3%A1s", got)
}
