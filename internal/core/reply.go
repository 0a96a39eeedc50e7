package core

import "github.com/deepak6009/customer-service-bot/internal/store"

const (
	answerTooShort = "Could you please provide more details?"
	answerGreeting = "Hi! How can I help you today?"
	answerHandoff  = "Thank you for chatting with ABC Lighting Corp. Please provide your name and email so we can save your chat history."
	answerNoMatch  = "I'm sorry, I couldn't find product details related to your query."
	endingNote     = "Is there anything else I can help you with?"
)

// Reply is the single client-renderable response shape. Fields are
// mutually exclusive by branch; Final signals the conversation handoff
// transition to the client.
type Reply struct {
	Answer      string          `json:"answer,omitempty"`
	Company     string          `json:"company,omitempty"`
	Locations   []string        `json:"locations,omitempty"`
	Hours       string          `json:"hours,omitempty"`
	About       string          `json:"about,omitempty"`
	Products    []store.Product `json:"products,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Specs       store.Specs     `json:"specs,omitempty"`
	ImageKey    string          `json:"imageKey,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	EndingNote  string          `json:"endingNote,omitempty"`
	Final       bool            `json:"final"`
}

func TooShortReply() Reply {
	return Reply{Answer: answerTooShort}
}

func GreetingReply() Reply {
	return Reply{Answer: answerGreeting}
}

func TerminationReply() Reply {
	return Reply{Answer: answerHandoff, Final: true}
}

// CompanyReply carries the full company profile plus the complete
// product snapshot, so the client can render everything at once.
func CompanyReply(info *store.CompanyInfo, products []store.Product) Reply {
	return Reply{
		Company:    info.Company,
		Locations:  info.Locations,
		Hours:      info.Hours,
		About:      info.About,
		Products:   products,
		EndingNote: endingNote,
	}
}

// ProductReply echoes the image key even when no signed link was
// generated, so the caller can request the image later without
// re-resolving the product.
func ProductReply(p *store.Product, imageURL string) Reply {
	return Reply{
		Name:        p.Name,
		Description: p.Description,
		Specs:       p.Specs,
		ImageKey:    p.ImageKey,
		ImageURL:    imageURL,
		EndingNote:  endingNote,
	}
}

func FallbackReply() Reply {
	return Reply{Answer: answerNoMatch, EndingNote: endingNote}
}
