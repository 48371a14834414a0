package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"ammanroofing/internal/domain"
	"ammanroofing/internal/repos"
)

var ErrChatDisabled = errors.New("chat relay not configured")

const defaultGeminiBase = "https://generativelanguage.googleapis.com"

// ChatService relays the support-widget conversation to the Gemini
// generateContent endpoint. The API key stays server-side; the prompt is
// seeded with the live stock snapshot so answers reflect current inventory.
type ChatService struct {
	Prods   *repos.ProductRepo
	APIKey  string
	Model   string
	BaseURL string // overridable for tests
	Timeout time.Duration
}

func NewChatService(prods *repos.ProductRepo, apiKey, model string) *ChatService {
	return &ChatService{Prods: prods, APIKey: apiKey, Model: model, BaseURL: defaultGeminiBase, Timeout: 20 * time.Second}
}

func (s *ChatService) Enabled() bool { return s.APIKey != "" }

// BuildPrompt frames the customer message with company context and a
// per-product stock summary.
func BuildPrompt(message string, products []domain.Product) string {
	var b strings.Builder
	b.WriteString("You are a helpful customer support assistant for Amman Roofing Company.\n")
	b.WriteString("You specialize in answering customer inquiries about roofing services, including roof installation, repair, and maintenance.\n")
	b.WriteString("Respond to the following customer query professionally and helpfully.\n\n")
	b.WriteString("Company info:\nphone: 7538859982\nemail: sriammanroofings@gmail.com\naddress: Annai Satya Nagar kanakagiri kakapalayam Salem\n\n")
	b.WriteString("Current stock:\n")
	for _, p := range products {
		status := "Out of Stock"
		if p.Availability {
			status = "In Stock"
		}
		fmt.Fprintf(&b, "- %s (%s) ₹%.2f qty=%d %s, delivery: %s\n",
			p.Name, p.Category, p.Price, p.Quantity, status, DeliveryTier(p.Availability, p.Quantity))
	}
	fmt.Fprintf(&b, "\nCustomer: %q\n\nAssistant:", message)
	return b.String()
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Reply sends one customer message and returns the concatenated model text.
func (s *ChatService) Reply(message string) (string, error) {
	if !s.Enabled() {
		return "", ErrChatDisabled
	}
	products, err := s.Prods.ListAll()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: BuildPrompt(message, products)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.BaseURL, s.Model, s.APIKey)

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(fiber.MethodPost)
	req.Header.SetContentType(fiber.MIMEApplicationJSON)
	req.SetRequestURI(url)
	req.SetBody(payload)
	if err := a.Parse(); err != nil {
		return "", err
	}
	code, body, errs := a.Timeout(s.Timeout).Bytes()
	if len(errs) > 0 {
		return "", errs[0]
	}
	if code != fiber.StatusOK {
		return "", fmt.Errorf("chat upstream returned %d", code)
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("chat upstream returned no candidates")
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}
