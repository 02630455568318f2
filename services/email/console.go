package emailsvc

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jdfgtrompete/explicacoes/core"
)

// SentMessages records everything the console service delivered; tests
// inspect it.
var (
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

// consoleService "delivers" email by printing the rendered MIME message to
// the log. It is the debug-mode stand-in for the real transport.
type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService() core.EmailService {
	return &consoleService{
		defaultFromEmail: core.Conf.DefaultFromEmail(),
		subjPrefix:       "[" + core.Conf.AppName + "] ",
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(); err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "rendering email"))
	}
	if !msg.HasRecipients() || !(msg.HasContent() || msg.HasAttachments()) {
		return
	}

	if !svc.disableOutput {
		log.Println(svc.renderMIME(*msg))
	}
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) renderMIME(msg core.EmailMessage) string {
	body := new(strings.Builder)
	svc.writeHeader(body, msg)

	var mixedW *multipart.Writer
	altW := multipart.NewWriter(body)
	defer altW.Close()

	if msg.HasAttachments() {
		mixedW = multipart.NewWriter(body)
		defer mixedW.Close()
		_, _ = fmt.Fprintf(body, "Content-Type: multipart/mixed\r\n")
		_, _ = fmt.Fprintf(body, "Content-Type: boundary=%s\r\n", mixedW.Boundary())
	} else {
		_, _ = fmt.Fprintf(body, "Content-Type: multipart/alternative\r\n")
		_, _ = fmt.Fprintf(body, "Content-Type: boundary=%s\r\n", altW.Boundary())
	}
	_, _ = fmt.Fprint(body, "\r\n")

	if mixedW != nil {
		mustCreatePart(mixedW, textproto.MIMEHeader{
			"Content-Type": {"multipart/alternative", "boundary=" + altW.Boundary()},
		})
	}

	w := mustCreatePart(altW, textproto.MIMEHeader{"Content-Type": {"text/plain"}})
	_, _ = fmt.Fprintf(w, "%s\r\n", msg.TextContent)

	if msg.TemplateName != "" {
		w = mustCreatePart(altW, textproto.MIMEHeader{"Content-Type": {"text/html"}})
		_, _ = fmt.Fprintf(w, "%s\r\n", msg.HTMLContent)
	}

	for _, at := range msg.Attachments {
		w = mustCreatePart(mixedW, textproto.MIMEHeader{
			"Content-Type":              {at.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {"attachment; filename=" + at.Filename},
		})
		_, _ = fmt.Fprintf(w, "%s\r\n", at.Content.String())
	}

	return body.String()
}

func (svc consoleService) writeHeader(body *strings.Builder, msg core.EmailMessage) {
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "CC: %s\r\n", joinAddresses(msg.Cc))
	_, _ = fmt.Fprintf(body, "BCC: %s\r\n", joinAddresses(msg.Bcc))
}

func mustCreatePart(w *multipart.Writer, header textproto.MIMEHeader) io.Writer {
	part, err := w.CreatePart(header)
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "creating "+strings.Join(header["Content-Type"], "; ")+" part"))
	}
	return part
}

func joinAddresses(addrs []mail.Address) string {
	joined := make([]string, 0, len(addrs))
	for _, a := range addrs {
		joined = append(joined, a.String())
	}
	return strings.Join(joined, ", ")
}

// consoleServiceMock sends synchronously and skips the log output, so tests
// can assert on SentMessages right after the request returns.
type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock() core.EmailService {
	return &consoleServiceMock{
		consoleService: consoleService{
			defaultFromEmail: core.Conf.DefaultFromEmail(),
			subjPrefix:       "[" + core.Conf.AppName + "] ",
			disableOutput:    true,
		},
	}
}

func (svc *consoleServiceMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		svc.sendMessage(msg)
	}
}
