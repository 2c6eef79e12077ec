package mailparse

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"

	"github.com/phishguard/phishguard/internal/domain/service"
)

// Parser turns raw RFC 5322 messages into the plain record the email
// analyzer consumes.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a raw email parser.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse reads a raw message and extracts sender, subject and a text
// body. HTML-only messages are converted to plain text so the content
// indicators see the same words a reader would.
func (p *Parser) Parse(r io.Reader) (service.EmailRecord, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return service.EmailRecord{}, fmt.Errorf("parse mime envelope: %w", err)
	}

	record := service.EmailRecord{
		Sender:  env.GetHeader("From"),
		Subject: env.GetHeader("Subject"),
		Content: env.Text,
	}

	if strings.TrimSpace(record.Content) == "" && env.HTML != "" {
		text, err := html2text.FromString(env.HTML, html2text.Options{TextOnly: true})
		if err != nil {
			p.logger.Warn("html body conversion failed, analyzing raw html",
				slog.String("error", err.Error()),
			)
			text = env.HTML
		}
		record.Content = text
	}

	for _, e := range env.Errors {
		p.logger.Debug("mime parse warning", slog.String("detail", e.Error()))
	}

	return record, nil
}
