// Package analysis содержит чистые функции расчёта метрик дашборда.
package analysis

import (
	"math"
	"strings"

	"CreditScoreZ/internal/model"
)

// HighScoreThreshold — порог "отличного" кредитного рейтинга.
const HighScoreThreshold = 700

// defaultValue подставляется, когда ни расшифрованного, ни публичного значения нет.
const defaultValue = 5

// Analysis — пять ограниченных метрик для графика анализа.
type Analysis struct {
	RiskLevel            int `json:"risk_level"`
	LendingCapacity      int `json:"lending_capacity"`
	RepaymentProbability int `json:"repayment_probability"`
	GrowthPotential      int `json:"growth_potential"`
	StabilityScore       int `json:"stability_score"`
}

// Analyze считает метрики по значению рейтинга и уровню активности.
// Риск сначала зажимается в [5,95], затем к нему добавляется поправка на активность.
func Analyze(score, activity float64) Analysis {
	baseRisk := math.Max(5, math.Min(95, 100-score))
	return Analysis{
		RiskLevel:            round(baseRisk + (100 - activity*10)),
		LendingCapacity:      min(1_000_000, round(score*1000)),
		RepaymentProbability: min(99, round(score*0.8+activity*2)),
		GrowthPotential:      min(95, round((score*0.6+activity*0.4)*0.8)),
		StabilityScore:       round(score*0.7 + activity*3),
	}
}

// AnalyzeRecord выбирает исходные значения из записи и вызывает Analyze.
// local — значение, расшифрованное в текущей сессии (может быть nil).
// Нулевые значения считаются отсутствующими.
func AnalyzeRecord(r model.Record, local *uint32) Analysis {
	return Analyze(float64(EffectiveScore(r, local)), float64(orDefault(r.PublicValue1)))
}

// EffectiveScore возвращает значение рейтинга, по которому строится анализ.
func EffectiveScore(r model.Record, local *uint32) uint32 {
	if r.IsVerified {
		return r.DecryptedValue
	}
	if local != nil && *local != 0 {
		return *local
	}
	return orDefault(r.PublicValue1)
}

// Stats — карточки сводки дашборда.
type Stats struct {
	Total        int     `json:"total"`
	Verified     int     `json:"verified"`
	AverageScore float64 `json:"average_score"`
	HighScores   int     `json:"high_scores"`
}

// Summarize считает сводку по списку записей.
// Значение записи: DecryptedValue, если оно ненулевое, иначе PublicValue1.
func Summarize(records []model.Record) Stats {
	st := Stats{Total: len(records)}
	if len(records) == 0 {
		return st
	}
	var sum float64
	for _, r := range records {
		if r.IsVerified {
			st.Verified++
		}
		v := displayScore(r)
		sum += float64(v)
		if v >= HighScoreThreshold {
			st.HighScores++
		}
	}
	st.AverageScore = sum / float64(len(records))
	return st
}

// Filter оставляет записи, у которых имя или адрес создателя содержит term (без учёта регистра).
// Пустой term возвращает исходный список.
func Filter(records []model.Record, term string) []model.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), term) || strings.Contains(strings.ToLower(r.Creator), term) {
			out = append(out, r)
		}
	}
	return out
}

func displayScore(r model.Record) uint32 {
	if r.DecryptedValue != 0 {
		return r.DecryptedValue
	}
	return r.PublicValue1
}

func orDefault(v uint32) uint32 {
	if v == 0 {
		return defaultValue
	}
	return v
}

// round — округление половины вверх, как у Math.round.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
