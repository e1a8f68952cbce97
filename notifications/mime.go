package notifications

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"

	"jaytaylor.com/html2text"

	"github.com/silinternational/terra/log"
)

// rawEmail generates a multi-part MIME email message with a plain text part and an html part:
//
//	From: from@example.com
//	To: to@example.com
//	Subject: subject text
//	Content-Type: multipart/alternative; boundary="boundary_alternative"
//
//	--boundary_alternative
//	Content-Type: text/plain; charset=utf-8
//
//	Plain text body
//	--boundary_alternative
//	Content-Type: text/html; charset=utf-8
//
//	HTML body
//	--boundary_alternative--
func rawEmail(to, from, subject, body string) []byte {
	tbody, err := html2text.FromString(body, html2text.Options{OmitLinks: false})
	if err != nil {
		log.Errorf("error converting html email to plain text ... %s", err)
		tbody = body
	}

	b := &bytes.Buffer{}
	b.WriteString("From: " + from + "\n")
	b.WriteString("To: " + to + "\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\n")
	b.WriteString("MIME-Version: 1.0\n")

	w := multipart.NewWriter(b)
	b.WriteString(`Content-Type: multipart/alternative; boundary="` + w.Boundary() + `"` + "\n\n")

	parts := []struct{ contentType, content string }{
		{"text/plain; charset=utf-8", tbody},
		{"text/html; charset=utf-8", body},
	}
	for _, p := range parts {
		pw, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":        {p.contentType},
			"Content-Disposition": {"inline"},
		})
		if err != nil {
			log.Errorf("failed to create MIME part %s, %s", p.contentType, err)
			continue
		}
		_, _ = fmt.Fprint(pw, p.content)
	}

	if err = w.Close(); err != nil {
		log.Errorf("failed to close MIME writer, %s", err)
	}

	return b.Bytes()
}
