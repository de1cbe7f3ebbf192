package offer

import (
	"testing"

	"cpv_go/models"
)

// TestNextPrompt проверяет вывод экранной подсказки из статуса.
func TestNextPrompt(t *testing.T) {
	cases := []struct {
		status models.OfferStatus
		want   string
	}{
		{models.StatusPendingPrecheck, PromptMain},
		{models.StatusPendingApproval, PromptMain},
		{models.StatusScheduled, PromptNone},
		{models.StatusRewarded, PromptNone},
		{models.StatusDeclinedByOwner, PromptNone},
	}
	for _, c := range cases {
		if got := NextPrompt(c.status); got != c.want {
			t.Fatalf("статус %s: ожидалась подсказка %q, получена %q", c.status, c.want, got)
		}
	}
}

// TestSummarize проверяет сборку ответа API из доменной записи.
func TestSummarize(t *testing.T) {
	o := &models.Offer{
		ID:              5,
		BloggerID:       1,
		ChannelID:       2,
		Status:          models.StatusPendingPrecheck,
		Price:           1000,
		EstimatedIncome: 800,
		PostingMode:     models.ModePrecheck,
	}
	s := Summarize(o)
	if s.ID != 5 || s.Status != "pending_precheck" || s.NextPrompt != PromptMain {
		t.Fatalf("неверная сводка: %+v", s)
	}
	if s.EstimatedIncome != 800 {
		t.Fatalf("доход в сводке: %d", s.EstimatedIncome)
	}
}
