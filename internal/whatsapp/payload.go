package whatsapp

import (
	"fmt"
	"mime"
	"strings"

	"github.com/google/uuid"
)

// WebhookPayload mirrors the Graph webhook envelope for message events.
type WebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []Message `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Message is one inbound chat message.
type Message struct {
	From     string `json:"from"`
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Image    *Media `json:"image,omitempty"`
	Document *Media `json:"document,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Media struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}

// Messages flattens the envelope into the inbound message list.
func (p WebhookPayload) Messages() []Message {
	var out []Message
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			out = append(out, change.Value.Messages...)
		}
	}
	return out
}

// AttachmentName returns the filename to store an inbound attachment under.
// Images often arrive nameless; a name is derived from the MIME type then.
func (m Message) AttachmentName() string {
	switch m.Type {
	case "image":
		if m.Image == nil {
			return ""
		}
		if m.Image.Filename != "" {
			return m.Image.Filename
		}
		return "img_" + shortID() + extensionForMime(m.Image.MimeType)
	case "document":
		if m.Document == nil {
			return ""
		}
		if m.Document.Filename != "" {
			return m.Document.Filename
		}
		return "doc_" + shortID() + ".pdf"
	}
	return ""
}

// MediaID returns the Graph media identifier for an attachment message.
func (m Message) MediaID() string {
	switch {
	case m.Type == "image" && m.Image != nil:
		return m.Image.ID
	case m.Type == "document" && m.Document != nil:
		return m.Document.ID
	}
	return ""
}

func extensionForMime(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".jpg"
	}
	_, sub, ok := strings.Cut(mediaType, "/")
	if !ok || sub == "" {
		return ".jpg"
	}
	if sub == "jpeg" {
		sub = "jpg"
	}
	return fmt.Sprintf(".%s", sub)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
