package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail envia o e-mail de confirmação de pagamento
func SendConfirmationEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@rioverdetecidos.com.br"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando e-mail para", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML monta o HTML de confirmação do pedido
func GenerateOrderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%.2f</td>
				<td>R$ %.2f</td>
			</tr>`, item.ProductName, item.Color, item.Quantity, item.Price*item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: sans-serif; color: #1c1917;">
	<h1 style="color: #14532d;">Pagamento confirmado! 🎉</h1>
	<p>Olá %s, recebemos o pagamento do seu pedido <strong>%s</strong>.</p>
	<table width="100%%" cellpadding="8" style="border-collapse: collapse;">
		<tr style="background: #f5f5f4; text-align: left;">
			<th>Produto</th><th>Cor</th><th>Qtd</th><th>Valor</th>
		</tr>
		%s
	</table>
	<p>Frete (%s): R$ %.2f</p>
	<p><strong>Total: R$ %.2f</strong></p>
	<p>Rio Verde Tecidos & Estofados — Bacacheri, Curitiba/PR</p>
</body>
</html>`,
		order.Customer, order.ID.String(), items.String(),
		order.DeliveryMethod, order.ShippingCost, order.Total)
}
