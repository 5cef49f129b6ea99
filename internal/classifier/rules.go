package classifier

import "regexp"

// Rule is a named group of trigger phrases sharing one score weight.
type Rule struct {
	ID      string
	Phrases []string
	Score   int
}

// Rules is evaluated in order; only the first matching phrase of a rule counts.
var Rules = []Rule{
	{ID: "otp_request", Phrases: []string{"otp", "one time password", "verification code", "verification otp"}, Score: 4},
	{ID: "bank_details", Phrases: []string{"bank account", "account number", "ifsc", "iban"}, Score: 4},
	{ID: "card_details", Phrases: []string{"cvv", "pin code", "card number", "debit card", "credit card"}, Score: 5},
	{ID: "prize_lottery", Phrases: []string{"you have won", "congratulations you won", "lottery winner", "prize money"}, Score: 4},
	{ID: "urgent_action", Phrases: []string{"urgent action", "limited time", "act now", "immediately", "within 5 minutes"}, Score: 2},
	{ID: "money_request", Phrases: []string{"send money", "wire money", "transfer money", "pay the fee"}, Score: 4},
	{ID: "giftcard_crypto", Phrases: []string{"gift card", "google play card", "itunes card", "bitcoin", "crypto"}, Score: 4},
	{ID: "investment", Phrases: []string{"investment opportunity", "double your money", "guaranteed returns"}, Score: 3},
	{ID: "inheritance", Phrases: []string{"inheritance", "foreign fund", "unclaimed funds"}, Score: 3},
	{ID: "keep_secret", Phrases: []string{"do not tell anyone", "keep this confidential"}, Score: 3},
	{ID: "account_verify", Phrases: []string{"verify your account", "confirm your identity", "kyc update"}, Score: 3},
}

// Shorteners are hosts that hide the real link destination.
var Shorteners = []string{"bit.ly", "tinyurl.com", "goo.gl", "ow.ly", "t.co"}

const (
	// SuspiciousThreshold is the minimum score that marks a message suspicious.
	SuspiciousThreshold = 3
	// MoneyAmountScore and ShortenerScore are added per pattern hit.
	MoneyAmountScore = 3
	ShortenerScore   = 3

	// MoneyAmountReason is recorded when a large money amount is found.
	MoneyAmountReason = "large money amount mentioned"
)

// space is the body of a character class matching Unicode whitespace.
// RE2's \s is ASCII only, so the space separators, line separators, the
// vertical tab and the byte order mark are listed explicitly.
const space = `\t\n\x{0B}\f\r \x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	// moneyAmount matches a currency code or symbol next to a number of 3+
	// digits, in either order. Word boundaries apply to the letter codes only.
	moneyAmount = regexp.MustCompile(`(?i)(\b(?:rs\.?|inr|usd|eur|rupees|dollars?)[` + space + `]?\d{3,}|(?:₹|\$|£)[` + space + `]?\d{3,}|\d{3,}[` + space + `]?(?:rs\.?|inr|₹|\$|eur|£))`)

	urlExtractor = regexp.MustCompile(`(?i)https?://[^` + space + `]+`)
)
