package render

import (
	"strings"
	"testing"
	"time"

	"CreditScoreZ/internal/analysis"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/service"

	"github.com/stretchr/testify/assert"
)

func u32(v uint32) *uint32 { return &v }

func TestBanner(t *testing.T) {
	r := New()
	assert.Empty(t, r.Banner(model.HiddenStatus))
	assert.Contains(t, r.Banner(model.TxStatus{Visible: true, Phase: model.PhasePending, Message: "Waiting for transaction confirmation..."}), "Waiting for transaction confirmation...")
	assert.Contains(t, r.Banner(model.TxStatus{Visible: true, Phase: model.PhaseSuccess, Message: "ok"}), "✓ ok")
	assert.Contains(t, r.Banner(model.TxStatus{Visible: true, Phase: model.PhaseError, Message: "Transaction rejected by user"}), "✗ Transaction rejected by user")
}

func TestSession(t *testing.T) {
	r := New()
	out := r.Session(service.SessionView{Gate: "Connect Your Wallet to Continue"})
	assert.Contains(t, out, "Connect Your Wallet to Continue")
	assert.NotContains(t, out, "Account:")

	out = r.Session(service.SessionView{
		Connected: true, Account: "0xabc", ContractAddress: "0xdef",
		FHEInitialized: true, Ready: true, Gate: "ready",
	})
	assert.Contains(t, out, "0xabc")
	assert.Contains(t, out, "0xdef")
	assert.Contains(t, out, "initialized")
	assert.Contains(t, out, "Ready")

	out = r.Session(service.SessionView{Connected: true, Account: "0xabc", FHEInitializing: true, Gate: "Initializing FHEVM"})
	assert.Contains(t, out, "Initializing FHEVM")
	assert.Contains(t, out, "Contract: -")
}

func TestDashboard(t *testing.T) {
	r := New()
	out := r.Dashboard(service.DashboardView{
		Stats:  analysis.Stats{Total: 3, Verified: 1, AverageScore: 250.4, HighScores: 1},
		Status: model.TxStatus{Visible: true, Phase: model.PhaseSuccess, Message: "Credit score created successfully!"},
		RecentHistory: []model.HistoryEntry{
			{ID: "score-1", Type: model.HistoryCreate, Name: "Alice", Score: 720, Timestamp: time.Unix(1_700_000_000, 0)},
		},
	})
	assert.Contains(t, out, "Credit score created successfully!")
	assert.Contains(t, out, "Total Credit Profiles")
	assert.Contains(t, out, "+1 excellent")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "250")
	assert.Contains(t, out, "Alice - Score: 720")

	out = r.Dashboard(service.DashboardView{})
	assert.Contains(t, out, "No operations yet")
}

func TestProfiles(t *testing.T) {
	r := New()
	out := r.Profiles(service.ProfilesView{Search: "zzz"})
	assert.Contains(t, out, "No credit profiles found")
	assert.Contains(t, out, `search: "zzz"`)

	out = r.Profiles(service.ProfilesView{Records: []model.Record{
		{ID: "score-1", Name: "Alice", Timestamp: 1_700_000_000, Creator: "0x1234567890abcdef1234567890abcdef12345678", PublicValue1: 7},
		{ID: "score-2", Name: "Bob", Timestamp: 1_700_000_000, Creator: "0x1234567890abcdef1234567890abcdef12345678", IsVerified: true, DecryptedValue: 650},
	}})
	assert.Contains(t, out, "score-1")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "7/10")
	assert.Contains(t, out, "2023-11-14")
	assert.Contains(t, out, "Ready for Verification")
	assert.Contains(t, out, "On-chain Verified (Score: 650)")
	assert.Contains(t, out, "0x1234...5678")
	assert.Contains(t, out, "Total: 2")
}

func TestDetail(t *testing.T) {
	r := New()
	rec := model.Record{ID: "score-1", Name: "Alice", Timestamp: 1_700_000_000, PublicValue1: 7}
	out := r.Detail(service.DetailView{Record: rec, ShortCreator: "0x1234...5678", DisplayValue: "FHE Encrypted Integer"})
	assert.Contains(t, out, "Credit Profile Details")
	assert.Contains(t, out, "FHE Encrypted Integer")
	assert.NotContains(t, out, "Credit Risk Analysis")

	a := analysis.Analyze(720, 7)
	out = r.Detail(service.DetailView{Record: rec, DisplayValue: "720 (Locally Decrypted)", LocalDecrypted: u32(720), Analysis: &a})
	assert.Contains(t, out, "720 (Locally Decrypted)")
	assert.Contains(t, out, "Credit Risk Analysis")
	assert.Contains(t, out, "Stability Score")
	assert.Contains(t, out, "Lending Capacity")
}

func TestBar_Clamps(t *testing.T) {
	r := New()
	assert.Equal(t, barWidth, strings.Count(r.bar(500, 100), "█"))
	assert.Equal(t, 0, strings.Count(r.bar(-3, 100), "█"))
	assert.Equal(t, barWidth/2, strings.Count(r.bar(50, 100), "█"))
}

func TestFlow(t *testing.T) {
	out := New().Flow(service.Flow)
	for i, s := range service.Flow {
		assert.Contains(t, out, s.Title)
		assert.Contains(t, out, s.Description)
		assert.Contains(t, out, string(rune('1'+i))+".")
	}
}

func TestVerified(t *testing.T) {
	r := New()
	assert.Empty(t, r.Verified(nil))
	assert.Contains(t, r.Verified(&service.VerifyResult{Cleared: true}), "hidden")
	assert.Contains(t, r.Verified(&service.VerifyResult{AlreadyVerified: true, Value: u32(650)}), "(Score: 650)")
	assert.Contains(t, r.Verified(&service.VerifyResult{Value: u32(720), TxHash: "0xfeed"}), "Decrypted score: 720")
	assert.Contains(t, r.Verified(&service.VerifyResult{Value: u32(720), TxHash: "0xfeed"}), "0xfeed")
}

func TestCreated(t *testing.T) {
	out := New().Created(service.CreateResult{ID: "score-1", TxHash: "0xabc"})
	assert.Contains(t, out, "score-1")
	assert.Contains(t, out, "0xabc")
}
