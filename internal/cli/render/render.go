package render

import (
	"fmt"
	"strings"
	"time"

	"CreditScoreZ/internal/analysis"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/service"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// Renderer рисует представления дашборда заданными стилями.
type Renderer struct {
	st Styles
}

func New() *Renderer {
	return &Renderer{st: DefaultStyles()}
}

// Banner — строка статуса транзакции; скрытый статус даёт пустую строку.
func (r *Renderer) Banner(s model.TxStatus) string {
	if !s.Visible {
		return ""
	}
	switch s.Phase {
	case model.PhaseSuccess:
		return r.st.Success.Render("✓ "+s.Message) + "\n"
	case model.PhaseError:
		return r.st.Error.Render("✗ "+s.Message) + "\n"
	default:
		return r.st.Pending.Render("… "+s.Message) + "\n"
	}
}

// Session — состояние шлюза: кошелёк, контракт, FHE.
func (r *Renderer) Session(v service.SessionView) string {
	var sb strings.Builder
	sb.WriteString(r.st.Title.Render("Encrypted DID Credit Score"))
	sb.WriteString("\n")
	if !v.Connected {
		sb.WriteString(r.st.Muted.Render(v.Gate))
		sb.WriteString("\n")
		return sb.String()
	}
	rows := [][2]string{
		{"Account", v.Account},
		{"Contract", orDash(v.ContractAddress)},
		{"FHEVM", fheState(v)},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "%s %s\n", r.st.Muted.Render(row[0]+":"), row[1])
	}
	if v.Ready {
		sb.WriteString(r.st.Success.Render("Ready"))
	} else {
		sb.WriteString(r.st.Pending.Render(v.Gate))
	}
	sb.WriteString("\n")
	return sb.String()
}

func fheState(v service.SessionView) string {
	switch {
	case v.FHEInitialized:
		return "initialized"
	case v.FHEInitializing:
		return "initializing"
	default:
		return "not initialized"
	}
}

// Dashboard — карточки статистики, баннер и последние операции.
func (r *Renderer) Dashboard(v service.DashboardView) string {
	var sb strings.Builder
	sb.WriteString(r.Banner(v.Status))
	sb.WriteString(r.st.Title.Render("Encrypted Credit Analytics (FHE)"))
	sb.WriteString("\n")
	sb.WriteString(r.stats(v.Stats))
	sb.WriteString("\n")
	if v.Loading {
		sb.WriteString(r.st.Muted.Render("Loading encrypted credit system..."))
		sb.WriteString("\n")
	}
	sb.WriteString(r.st.Bold.Render("Your Operation History"))
	sb.WriteString("\n")
	sb.WriteString(r.historyList(v.RecentHistory))
	return sb.String()
}

func (r *Renderer) stats(s analysis.Stats) string {
	card := func(title, value, trend string) string {
		return r.st.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			r.st.Muted.Render(title),
			r.st.Bold.Render(value),
			r.st.Muted.Render(trend),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Credit Profiles", fmt.Sprintf("%d", s.Total), fmt.Sprintf("+%d excellent", s.HighScores)),
		card("FHE Verified", fmt.Sprintf("%d/%d", s.Verified, s.Total), "On-chain Secured"),
		card("Average Score", fmt.Sprintf("%.0f", s.AverageScore), "FHE Protected"),
	)
}

// Profiles — таблица записей или заглушка, если список пуст.
func (r *Renderer) Profiles(v service.ProfilesView) string {
	var sb strings.Builder
	title := "Credit Profiles"
	if v.Search != "" {
		title += fmt.Sprintf(" (search: %q)", v.Search)
	}
	sb.WriteString(r.st.Title.Render(title))
	sb.WriteString("\n")
	if len(v.Records) == 0 {
		sb.WriteString(r.st.Muted.Render("No credit profiles found"))
		sb.WriteString("\n")
		return sb.String()
	}
	t := newTable("ID", "Name", "Activity", "Created", "Status", "Creator")
	for _, rec := range v.Records {
		t.addRow(
			rec.ID,
			rec.Name,
			fmt.Sprintf("%d/10", rec.PublicValue1),
			formatDate(rec.Timestamp),
			recordStatus(rec),
			rec.ShortCreator(),
		)
	}
	sb.WriteString(t.view(r.st))
	fmt.Fprintf(&sb, "Total: %d\n", len(v.Records))
	return sb.String()
}

func recordStatus(rec model.Record) string {
	if rec.IsVerified {
		if rec.DecryptedValue != 0 {
			return fmt.Sprintf("On-chain Verified (Score: %d)", rec.DecryptedValue)
		}
		return "On-chain Verified"
	}
	return "Ready for Verification"
}

// Detail — карточка записи и, если значение известно, анализ риска.
func (r *Renderer) Detail(v service.DetailView) string {
	var sb strings.Builder
	sb.WriteString(r.st.Title.Render("Credit Profile Details"))
	sb.WriteString("\n")
	info := [][2]string{
		{"Profile ID", v.Record.ID},
		{"Profile Name", v.Record.Name},
		{"Creator", v.ShortCreator},
		{"Date Created", formatDate(v.Record.Timestamp)},
		{"Public Activity Level", fmt.Sprintf("%d/10", v.Record.PublicValue1)},
		{"Credit Score", v.DisplayValue},
	}
	lines := make([]string, 0, len(info))
	for _, row := range info {
		lines = append(lines, r.st.Muted.Render(row[0]+":")+" "+r.st.Bold.Render(row[1]))
	}
	sb.WriteString(r.st.Card.Render(strings.Join(lines, "\n")))
	sb.WriteString("\n")
	if v.Analysis != nil {
		sb.WriteString(r.analysis(*v.Analysis))
	}
	return sb.String()
}

func (r *Renderer) analysis(a analysis.Analysis) string {
	var sb strings.Builder
	sb.WriteString(r.st.Bold.Render("Credit Risk Analysis"))
	sb.WriteString("\n")
	bars := []struct {
		label string
		value int
		max   int
		text  string
	}{
		{"Risk Level", a.RiskLevel, 100, fmt.Sprintf("%d%%", a.RiskLevel)},
		{"Lending Capacity", a.LendingCapacity, 1000000, fmt.Sprintf("$%d", a.LendingCapacity)},
		{"Repayment Probability", a.RepaymentProbability, 100, fmt.Sprintf("%d%%", a.RepaymentProbability)},
		{"Growth Potential", a.GrowthPotential, 100, fmt.Sprintf("%d%%", a.GrowthPotential)},
		{"Stability Score", a.StabilityScore, 100, fmt.Sprintf("%d/100", a.StabilityScore)},
	}
	for _, b := range bars {
		fmt.Fprintf(&sb, "%-22s %s %s\n", b.label, r.bar(b.value, b.max), b.text)
	}
	return sb.String()
}

const barWidth = 20

func (r *Renderer) bar(value, max int) string {
	filled := 0
	if max > 0 && value > 0 {
		filled = value * barWidth / max
	}
	if filled > barWidth {
		filled = barWidth
	}
	return r.st.Success.Render(strings.Repeat("█", filled)) + r.st.Muted.Render(strings.Repeat("░", barWidth-filled))
}

// History — журнал операций сессии.
func (r *Renderer) History(entries []model.HistoryEntry) string {
	var sb strings.Builder
	sb.WriteString(r.st.Title.Render("Your Operation History"))
	sb.WriteString("\n")
	sb.WriteString(r.historyList(entries))
	return sb.String()
}

func (r *Renderer) historyList(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return r.st.Muted.Render("No operations yet") + "\n"
	}
	t := newTable("Type", "Details", "Time")
	for _, e := range entries {
		details := fmt.Sprintf("Score: %d", e.Score)
		if e.Name != "" {
			details = e.Name + " - " + details
		}
		t.addRow(string(e.Type), details, e.Timestamp.Local().Format(time.DateTime))
	}
	return t.view(r.st)
}

// Flow — четыре шага схемы FHE.
func (r *Renderer) Flow(steps []service.FlowStep) string {
	var sb strings.Builder
	sb.WriteString(r.st.Title.Render("FHE Privacy-Preserving Credit Scoring"))
	sb.WriteString("\n")
	cards := make([]string, 0, len(steps)*2)
	for i, s := range steps {
		if i > 0 {
			cards = append(cards, r.st.Muted.Render(" → "))
		}
		cards = append(cards, r.st.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			r.st.Bold.Render(fmt.Sprintf("%d. %s", i+1, s.Title)),
			r.st.Muted.Render(s.Description),
		)))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, cards...))
	sb.WriteString("\n")
	return sb.String()
}

// Created — итог создания записи.
func (r *Renderer) Created(res service.CreateResult) string {
	return r.st.Success.Render("Credit score created successfully!") + "\n" +
		fmt.Sprintf("%s %s\n%s %s\n", r.st.Muted.Render("ID:"), res.ID, r.st.Muted.Render("Tx:"), orDash(res.TxHash))
}

// Verified — итог переключения расшифровки.
func (r *Renderer) Verified(res *service.VerifyResult) string {
	switch {
	case res == nil:
		return ""
	case res.Cleared:
		return r.st.Muted.Render("Decrypted value hidden") + "\n"
	case res.AlreadyVerified:
		msg := "Data is already verified on-chain"
		if res.Value != nil {
			msg += fmt.Sprintf(" (Score: %d)", *res.Value)
		}
		return r.st.Success.Render(msg) + "\n"
	case res.Value != nil:
		out := r.st.Success.Render(fmt.Sprintf("Decrypted score: %d", *res.Value)) + "\n"
		if res.TxHash != "" {
			out += fmt.Sprintf("%s %s\n", r.st.Muted.Render("Tx:"), res.TxHash)
		}
		return out
	default:
		return r.st.Success.Render("Data decrypted and verified") + "\n"
	}
}

func formatDate(unix int64) string {
	if unix <= 0 {
		return "-"
	}
	return time.Unix(unix, 0).UTC().Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
