package fixture

import (
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

// Demo account seeded into every Backend.
const (
	DemoUserID   = "1"
	DemoEmail    = "user@phishshield.ai"
	DemoPassword = "password"
	DemoName     = "John Doe"
	DemoPhone    = "+1234567890"
	DemoCredits  = 125
)

var demoCreatedAt = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// CreditsPerCorrectAnswer is awarded for every correct quiz answer.
const CreditsPerCorrectAnswer = 10

func dashboardData() models.DashboardData {
	at := func(h, m int) time.Time { return time.Date(2024, 9, 26, h, m, 0, 0, time.UTC) }
	return models.DashboardData{
		ProtectedPercentage: 92.3,
		BlockedCount:        125,
		AttemptsDetected:    143,
		Credits:             85,
		History: []models.HistoryItem{
			{ID: "1", URL: "https://phishy-bank.com/login", Score: 92, VisitedAt: at(13, 4), Status: models.RiskDangerous},
			{ID: "2", URL: "https://legitimate-site.com", Score: 15, VisitedAt: at(12, 30), Status: models.RiskSafe},
			{ID: "3", URL: "https://suspicious-link.net", Score: 65, VisitedAt: at(11, 45), Status: models.RiskSuspicious},
		},
		CarouselTips: []string{
			"Never share your OTP with anyone",
			"Always check the sender's email domain",
			"Hover over links before clicking to see the real URL",
			"Be cautious of urgent messages requesting personal info",
			"Use two-factor authentication whenever possible",
		},
	}
}

var quizBank = []models.QuizQuestion{
	{
		ID:       "1",
		Question: "What should you do if you receive an urgent email asking for your password?",
		Options: []string{
			"Reply immediately with your password",
			"Ignore the email and verify through official channels",
			"Forward it to your friends",
			"Click on any links to verify",
		},
		Answer:      "Ignore the email and verify through official channels",
		Explanation: "Never share passwords via email. Always verify through official channels like calling the company directly.",
	},
	{
		ID:       "2",
		Question: "Which of these URLs is most likely to be a phishing attempt?",
		Options: []string{
			"https://amazon.com/account",
			"https://arnazon.com/account",
			"https://www.amazon.com/login",
			"https://smile.amazon.com",
		},
		Answer:      "https://arnazon.com/account",
		Explanation: "The second URL uses \"arnazon\" instead of \"amazon\", a common phishing technique called typosquatting.",
	},
	{
		ID:       "3",
		Question: "Your bank texts you a one-time code you did not request, and then someone calls asking for it. What do you do?",
		Options: []string{
			"Read the code to the caller",
			"Hang up and never share the code",
			"Send the code by email instead",
			"Ask the caller to hold while you log in",
		},
		Answer:      "Hang up and never share the code",
		Explanation: "One-time codes are only for you. Anyone asking for one is trying to take over your account.",
	},
	{
		ID:       "4",
		Question: "An email from \"IT Support\" comes from support@company-helpdesk.co instead of your company domain. What is the safest assumption?",
		Options: []string{
			"It is a new official helpdesk",
			"It is probably a phishing email",
			"It is safe because it mentions IT",
			"It is safe if it has a logo",
		},
		Answer:      "It is probably a phishing email",
		Explanation: "Check the sender's domain. Look-alike domains are one of the most common phishing signs.",
	},
	{
		ID:       "5",
		Question: "Which habit best protects your accounts if a password is phished?",
		Options: []string{
			"Using the same strong password everywhere",
			"Writing passwords on a sticky note",
			"Turning on two-factor authentication",
			"Changing passwords every day",
		},
		Answer:      "Turning on two-factor authentication",
		Explanation: "With two-factor authentication a stolen password alone is not enough to sign in.",
	},
	{
		ID:       "6",
		Question: "How can you see where a link really leads before clicking it?",
		Options: []string{
			"Hover over it and read the URL",
			"Trust the link text",
			"Click it in a private window",
			"Check whether it is underlined",
		},
		Answer:      "Hover over it and read the URL",
		Explanation: "The visible text of a link can say anything. Hovering shows the actual destination.",
	},
}

var chatReplies = []string{
	"I can help you identify potential phishing attempts. Can you share the suspicious link or email?",
	"That looks like a legitimate website, but always verify the URL carefully.",
	"This appears to be a phishing attempt. Notice the misspelled domain name.",
	"Great question! Always be cautious of emails asking for personal information.",
}
