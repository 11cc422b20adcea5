package whatsapp

import "strings"

// Webhook payload shapes for the WhatsApp Cloud API "messages" field.
// Only the parts the assistant consumes are modeled.

type webhookPayload struct {
	Object string  `json:"object"`
	Entry  []entry `json:"entry"`
}

type entry struct {
	ID      string   `json:"id"`
	Changes []change `json:"changes"`
}

type change struct {
	Field string      `json:"field"`
	Value changeValue `json:"value"`
}

type changeValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         metadata  `json:"metadata"`
	Contacts         []contact `json:"contacts"`
	Messages         []message `json:"messages"`
}

type metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type contact struct {
	WaID    string  `json:"wa_id"`
	Profile profile `json:"profile"`
}

type profile struct {
	Name string `json:"name"`
}

type message struct {
	From      string    `json:"from"`
	Author    string    `json:"author,omitempty"`
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	Type      string    `json:"type"`
	Text      *textBody `json:"text,omitempty"`
}

type textBody struct {
	Body string `json:"body"`
}

// inbound is one text message normalized out of the webhook payload.
type inbound struct {
	MessageID   string
	ChatID      string
	SenderPhone string
	SenderName  string
	Text        string
	IsGroup     bool
}

// extractMessages flattens the payload into the text messages it
// carries. Status updates, reactions and media messages are skipped.
func extractMessages(p *webhookPayload) []inbound {
	var msgs []inbound
	for _, e := range p.Entry {
		for _, c := range e.Changes {
			if c.Field != "messages" {
				continue
			}
			names := make(map[string]string, len(c.Value.Contacts))
			for _, ct := range c.Value.Contacts {
				names[ct.WaID] = ct.Profile.Name
			}
			for _, m := range c.Value.Messages {
				if m.Type != "text" || m.Text == nil {
					continue
				}
				group := isGroupJID(m.From)
				sender := m.From
				if group && m.Author != "" {
					// Gateway bridges report the chat in "from" and
					// the actual sender in "author" for group chats.
					sender = m.Author
				}
				phone := phoneFromJID(sender)
				msgs = append(msgs, inbound{
					MessageID:   m.ID,
					ChatID:      m.From,
					SenderPhone: phone,
					SenderName:  names[phone],
					Text:        m.Text.Body,
					IsGroup:     group,
				})
			}
		}
	}
	return msgs
}

// isGroupJID reports whether a chat identity is a group JID.
func isGroupJID(jid string) bool {
	return strings.HasSuffix(jid, "@g.us")
}

// phoneFromJID strips the JID server suffix, leaving the phone number.
func phoneFromJID(jid string) string {
	for _, suffix := range []string{"@c.us", "@s.whatsapp.net", "@lid"} {
		if s, ok := strings.CutSuffix(jid, suffix); ok {
			return s
		}
	}
	return jid
}
