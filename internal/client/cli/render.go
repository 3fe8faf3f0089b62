package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/client/validate"
)

// palette uses ANSI 256-color codes.
var (
	colorAccent  = lipgloss.Color("39")
	colorSuccess = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorDanger  = lipgloss.Color("196")
	colorFaint   = lipgloss.Color("245")
)

// printer renders user-facing output. Styles degrade to plain text when w
// is not a color terminal.
type printer struct {
	w io.Writer

	title   lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
	success lipgloss.Style
	danger  lipgloss.Style
	warning lipgloss.Style
	box     lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		label:   r.NewStyle().Bold(true),
		faint:   r.NewStyle().Foreground(colorFaint),
		success: r.NewStyle().Foreground(colorSuccess),
		danger:  r.NewStyle().Foreground(colorDanger),
		warning: r.NewStyle().Foreground(colorWarning),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFaint).Padding(0, 1),
	}
}

func (p *printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Success and Error make printer a session.Notifier.
func (p *printer) Success(msg string) {
	p.println(p.success.Render("✓ " + msg))
}

func (p *printer) Error(msg string) {
	p.println(p.danger.Render("✗ " + msg))
}

func (p *printer) fieldErrors(errs validate.Errors) {
	for _, fe := range errs {
		p.println(p.danger.Render(fmt.Sprintf("  %s: %s", fe.Field, fe.Message)))
	}
}

func (p *printer) passwordChecklist(password string) {
	for _, c := range validate.PasswordChecks(password) {
		if c.Valid {
			p.println(p.success.Render("  ✓ " + c.Label))
		} else {
			p.println(p.faint.Render("  ○ " + c.Label))
		}
	}
}

func (p *printer) kv(key, value string) string {
	return p.label.Render(fmt.Sprintf("%-9s", key)) + " " + value
}

func (p *printer) user(u models.User) {
	lines := []string{
		p.title.Render(u.Name),
		p.kv("Email", u.Email),
	}
	if u.PhoneNumber != "" {
		lines = append(lines, p.kv("Phone", u.PhoneNumber))
	}
	if u.Avatar != "" {
		lines = append(lines, p.kv("Avatar", u.Avatar))
	}
	lines = append(lines, p.kv("Credits", fmt.Sprintf("%d", u.Credits)))
	if !u.CreatedAt.IsZero() {
		lines = append(lines, p.kv("Member", "since "+u.CreatedAt.Format("January 2006")))
	}
	p.println(p.box.Render(strings.Join(lines, "\n")))
}

func (p *printer) risk(s models.RiskStatus) string {
	s = s.Normalize()
	label := strings.ToUpper(string(s))
	switch s {
	case models.RiskSafe:
		return p.success.Render(label)
	case models.RiskSuspicious:
		return p.warning.Render(label)
	case models.RiskDangerous:
		return p.danger.Render(label)
	default:
		return p.faint.Render(label)
	}
}

func (p *printer) dashboard(d models.DashboardData, tip int) {
	stats := []string{
		p.title.Render("Protection overview"),
		p.kv("Protected", fmt.Sprintf("%d%%", d.ProtectedPercent())),
		p.kv("Blocked", fmt.Sprintf("%d", d.BlockedCount)),
		p.kv("Detected", fmt.Sprintf("%d", d.AttemptsDetected)),
		p.kv("Credits", fmt.Sprintf("%d", d.Credits)),
	}
	p.println(p.box.Render(strings.Join(stats, "\n")))

	if len(d.History) > 0 {
		p.println(p.title.Render("Recent activity"))
		for _, h := range d.History {
			p.println(fmt.Sprintf("  %-10s %3d  %s  %s",
				p.risk(h.Status), h.Score, h.URL, p.faint.Render(h.VisitedAt.Format("2006-01-02 15:04"))))
		}
	}

	if t := d.Tip(tip); t != "" {
		p.println(p.warning.Render("Tip: ") + t)
	}
}

func (p *printer) question(i, total int, q models.QuizQuestion, progress int) {
	p.println(p.faint.Render(fmt.Sprintf("Question %d of %d (%d%%)", i+1, total, progress)))
	p.println(p.label.Render(q.Question))
	for n, opt := range q.Options {
		p.println(fmt.Sprintf("  %d) %s", n+1, opt))
	}
}

func (p *printer) verdict(correct bool, q models.QuizQuestion) {
	if correct {
		p.println(p.success.Render("Correct!"))
	} else {
		msg := "Incorrect."
		if a := q.CorrectAnswer(); a != "" {
			msg += " The answer was: " + a
		}
		p.println(p.danger.Render(msg))
	}
	if q.Explanation != "" {
		p.println(p.faint.Render(q.Explanation))
	}
}

func (p *printer) quizResult(r models.QuizResult) {
	lines := []string{
		p.title.Render("Quiz complete"),
		p.kv("Score", fmt.Sprintf("%d%%", r.Percentage())),
		p.kv("Correct", fmt.Sprintf("%d / %d", r.CorrectAnswers, r.TotalQuestions)),
		p.kv("Credits", fmt.Sprintf("+%d", r.CreditsEarned)),
	}
	p.println(p.box.Render(strings.Join(lines, "\n")))
}

func (p *printer) assistant(msg string) {
	p.println(p.title.Render("PhishShield AI: ") + msg)
}
