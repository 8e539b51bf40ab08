package smtp

import (
	"fmt"
	"mime"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stanac/mdmail/pkg/mail"
)

// buildMessage assembles the RFC 5322 message: headers, then a text/plain,
// text/html, or multipart/alternative body depending on which bodies are set.
// Bcc recipients are envelope-only and never appear in headers.
func buildMessage(email *mail.Email, fromName, fromEmail, host string) string {
	var msg strings.Builder

	from := netmail.Address{Name: fromName, Address: fromEmail}
	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	if len(email.Cc) > 0 {
		fmt.Fprintf(&msg, "Cc: %s\r\n", strings.Join(email.Cc, ", "))
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(email.Subject)))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", uuid.NewString(), host)
	msg.WriteString("MIME-Version: 1.0\r\n")

	for k, v := range email.Headers {
		if strings.EqualFold(k, "Content-Type") {
			continue
		}
		fmt.Fprintf(&msg, "%s: %s\r\n", headerValue(k), headerValue(v))
	}

	writeBody(&msg, email)

	return msg.String()
}

var headerSanitizer = strings.NewReplacer("\r", "", "\n", "")

// headerValue strips CR/LF so template or caller data cannot inject extra
// headers into the message.
func headerValue(s string) string {
	return headerSanitizer.Replace(s)
}

func writeBody(msg *strings.Builder, email *mail.Email) {
	if email.HTML != "" && email.Text != "" {
		boundary := "alt-" + uuid.NewString()
		fmt.Fprintf(msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

		// Plain text first: clients pick the last part they can display.
		fmt.Fprintf(msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.Text)
		msg.WriteString("\r\n\r\n")

		fmt.Fprintf(msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.HTML)
		msg.WriteString("\r\n\r\n")

		fmt.Fprintf(msg, "--%s--\r\n", boundary)
		return
	}

	contentType, body := "text/plain", email.Text
	if email.HTML != "" {
		contentType, body = "text/html", email.HTML
	}
	fmt.Fprintf(msg, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	msg.WriteString(body)
	msg.WriteString("\r\n")
}
