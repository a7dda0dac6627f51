package payment

import (
	"regexp"
	"strings"

	"cobrify/internal/core/normalize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The amount token is the currency marker followed by either a thousands
// grouped number (1,250.00) or a plain one whose decimal mark is a dot or a comma
var amountRe = regexp.MustCompile(`[Ss]/\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)

var (
	// "Yape! Maria Lopez te envió un pago por S/ 1.00"
	yapeSenderRe = regexp.MustCompile(`(?i)yape!\s+([^.,!?]+?)\s+te\s+(?:envi[oó]|yape[oó])`)

	// "Recibiste S/ 50.00 de Juan Perez", stopping at punctuation or a lowercase connector
	deSenderRe = regexp.MustCompile(
		`(?:^|\s)[Dd]e\s+(\p{Lu}[\p{L}\p{M}'’\-]*(?:\s+[\p{L}\p{M}'’\-]+)*?)` +
			`(?:\s*[.,!?;:]|\s+(?:por|el|la|en|a|al|con|para|y|hoy|te|que|via|mediante|desde)(?:\s|$)|\s*$)`)

	// "Recibiste S/ 50.00 de juan perez"; lowercase names only count when they
	// run to punctuation or the end, since a connector cannot be told apart from them
	deLooseRe = regexp.MustCompile(
		`(?:^|\s)[Dd]e\s+(\p{Ll}[\p{L}\p{M}'’\-]*(?:\s+[\p{L}\p{M}'’\-]+)*?)\s*(?:[.,!?;:]|$)`)
)

var newID = uuid.New

// Parser extracts a Record from notification title and body; the zero value is ready
type Parser struct{}

// Parse is ParseAt without a timestamp
func (p Parser) Parse(title, body string) (Record, bool) { return p.ParseAt(title, body, 0) }

// ParseAt returns the record found in title and body, stamped with observedAt.
// ok is false when no amount token is present
func (Parser) ParseAt(title, body string, observedAt int64) (Record, bool) {
	text := normalize.Join(title, body)

	amount, ok := parseAmount(text)
	if !ok {
		return Record{}, false
	}
	return Record{
		ID:               newID(),
		Amount:           amount,
		Currency:         Currency,
		SenderName:       senderOf(text),
		RawTitle:         title,
		RawBody:          body,
		ObservedAtMillis: observedAt,
	}, true
}

// Parse runs the zero Parser
func Parse(title, body string) (Record, bool) { return Parser{}.Parse(title, body) }

// ParseAt runs the zero Parser with a timestamp
func ParseAt(title, body string, observedAt int64) (Record, bool) {
	return Parser{}.ParseAt(title, body, observedAt)
}

// parseAmount reads the first well formed amount token. A token whose digits
// run on past the match (S/ 1,2345, S/ 25.505) is truncated, so it is skipped
func parseAmount(text string) (decimal.Decimal, bool) {
	for _, loc := range amountRe.FindAllStringSubmatchIndex(text, -1) {
		if truncated(text[loc[1]:]) {
			continue
		}
		return amountOf(text[loc[2]:loc[3]])
	}
	return decimal.Decimal{}, false
}

func truncated(rest string) bool {
	if rest == "" {
		return false
	}
	if isDigit(rest[0]) {
		return true
	}
	return (rest[0] == '.' || rest[0] == ',') && len(rest) > 1 && isDigit(rest[1])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func amountOf(digits string) (decimal.Decimal, bool) {
	if strings.Count(digits, ",") == 1 && !strings.Contains(digits, ".") && len(digits)-strings.IndexByte(digits, ',') <= 3 {
		digits = strings.Replace(digits, ",", ".", 1)
	} else {
		digits = strings.ReplaceAll(digits, ",", "")
	}
	d, err := decimal.NewFromString(digits)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func senderOf(text string) string {
	for _, re := range []*regexp.Regexp{yapeSenderRe, deSenderRe, deLooseRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
	}
	return UnknownSender
}
