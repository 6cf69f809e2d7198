package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

type tmpl struct {
	subject string
	body    *template.Template
}

var templates = map[Kind]tmpl{
	KindBookingConfirmed: {
		subject: "Reserva confirmada",
		body: template.Must(template.New("confirmed").Parse(
			"Olá {{.Name}},\n\nSua reserva de {{index .Fields \"service\"}} com {{index .Fields \"barber\"}} " +
				"está marcada para {{index .Fields \"date_time\"}}.\n")),
	},
	KindBookingCancelled: {
		subject: "Reserva cancelada",
		body: template.Must(template.New("cancelled").Parse(
			"Olá {{.Name}},\n\nSua reserva de {{index .Fields \"date_time\"}} com {{index .Fields \"barber\"}} foi cancelada.\n")),
	},
	KindBookingVoided: {
		subject: "Sua reserva foi cancelada pela barbearia",
		body: template.Must(template.New("voided").Parse(
			"Olá {{.Name}},\n\n{{index .Fields \"barber\"}} não estará disponível em {{index .Fields \"date_time\"}}" +
				"{{with index .Fields \"reason\"}} ({{.}}){{end}}. Sua reserva foi cancelada; escolha outro horário quando quiser.\n")),
	},
	KindAbsenceApproved: {
		subject: "Ausência aprovada",
		body: template.Must(template.New("approved").Parse(
			"Olá {{.Name}},\n\nSua solicitação de ausência foi aprovada. " +
				"Reservas canceladas: {{index .Fields \"cancelled_bookings\"}}.\n" +
				"{{with index .Fields \"comment\"}}Comentário: {{.}}\n{{end}}")),
	},
	KindAbsenceRejected: {
		subject: "Ausência rejeitada",
		body: template.Must(template.New("rejected").Parse(
			"Olá {{.Name}},\n\nSua solicitação de ausência foi rejeitada.\nMotivo: {{index .Fields \"reason\"}}\n")),
	},
}

// Render devolve assunto e corpo do e-mail de uma mensagem.
func Render(msg Message) (string, string, error) {
	t, ok := templates[msg.Kind]
	if !ok {
		return "", "", fmt.Errorf("notification: unknown kind %q", msg.Kind)
	}

	var buf bytes.Buffer
	if err := t.body.Execute(&buf, msg); err != nil {
		return "", "", fmt.Errorf("notification: render %s: %w", msg.Kind, err)
	}
	return t.subject, buf.String(), nil
}
