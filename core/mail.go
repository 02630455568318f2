package core

import (
	"bytes"
	"encoding/base64"
	htmltmpl "html/template"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"net/mail"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	texttmpl "text/template"

	appfs "github.com/jdfgtrompete/explicacoes/fs"
)

type (
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// tmplSet holds the parsed text and HTML variants of one named template.
type tmplSet struct {
	text *texttmpl.Template
	html *htmltmpl.Template
}

var (
	templates map[string]*tmplSet
	tmplInit  sync.Once
)

// Render fills TextContent/HTMLContent from BodyStr or the named template.
// Missing template variants are skipped silently.
func (m *EmailMessage) Render() error {
	if m.TemplateName != "" {
		tmplInit.Do(parseTemplates) // deferred to first use
	}

	data := ContextData{
		FrontendBaseURL: Conf.FrontendBaseURL,
		Data:            m.TemplateData,
	}

	set := templates[m.TemplateName]

	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
	} else if set != nil && set.text != nil {
		var buff bytes.Buffer
		if err := set.text.Execute(&buff, data); err != nil {
			return err
		}
		m.TextContent = buff.String()
	}

	if set != nil && set.html != nil {
		var buff bytes.Buffer
		if err := set.html.Execute(&buff, data); err != nil {
			return err
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

// Attach base64 encodes the reader's content into a new attachment; the
// content type is sniffed when not provided.
func (m *EmailMessage) Attach(r io.Reader, filename string, ct ...string) error {
	at := Attachment{Filename: filename, Content: new(bytes.Buffer)}

	content, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	encoder := base64.NewEncoder(base64.StdEncoding, at.Content)
	if _, err := encoder.Write(content); err != nil {
		return err
	}
	_ = encoder.Close()

	if len(ct) > 0 {
		at.ContentType = ct[0]
	} else {
		at.ContentType = http.DetectContentType(content)
	}
	m.Attachments = append(m.Attachments, at)
	return nil
}

func (m *EmailMessage) AttachFile(path string, contentType ...string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Attach(f, filepath.Base(path), contentType...)
}

func (m *EmailMessage) HasRecipients() bool  { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool     { return (m.TextContent != "") || (m.HTMLContent != "") }
func (m *EmailMessage) HasAttachments() bool { return len(m.Attachments) > 0 }

// parseTemplates loads the embedded email templates. Each <name>.txt pairs
// with _base.txt, each <name>.gohtml with _base.gohtml; files starting with
// "_" are bases, not templates.
func parseTemplates() {
	templates = make(map[string]*tmplSet)

	dir := "templates/email"
	entries, err := appfs.FS.ReadDir(dir)
	if err != nil {
		log.Printf("core.parseTemplates: %v", err)
		return
	}

	for _, entry := range entries {
		fname := entry.Name()
		ext := filepath.Ext(fname)
		if strings.HasPrefix(fname, "_") || !(ext == ".txt" || ext == ".gohtml") {
			continue
		}

		name := strings.TrimSuffix(fname, ext)
		set, ok := templates[name]
		if !ok {
			set = new(tmplSet)
			templates[name] = set
		}

		fp := path.Join(dir, fname)
		switch ext {
		case ".txt":
			tmpl, err := texttmpl.ParseFS(appfs.FS, path.Join(dir, "_base.txt"), fp)
			if err != nil {
				log.Printf("core.parseTemplates: %v", err)
				continue
			}
			if Conf.Debug || Conf.TestMode {
				tmpl = tmpl.Option("missingkey=error")
			}
			set.text = tmpl
		case ".gohtml":
			tmpl, err := htmltmpl.ParseFS(appfs.FS, path.Join(dir, "_base.gohtml"), fp)
			if err != nil {
				log.Printf("core.parseTemplates: %v", err)
				continue
			}
			if Conf.Debug || Conf.TestMode {
				tmpl = tmpl.Option("missingkey=error")
			}
			set.html = tmpl
		}
	}
}
