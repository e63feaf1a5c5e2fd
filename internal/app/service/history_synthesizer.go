package service

import (
	"math/rand/v2"
	"time"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/utils"
)

// HistoryPoints is the number of daily samples a synthesized history contains.
const HistoryPoints = 31

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// historySynthesizerImpl fabricates a display-only portfolio value curve.
type historySynthesizerImpl struct {
	random port.RandomSource
	now    func() time.Time
}

// NewHistorySynthesizer creates a synthesizer. A nil random source uses math/rand/v2 and a nil clock uses time.Now.
func NewHistorySynthesizer(random port.RandomSource, now func() time.Time) port.HistorySynthesizer {
	if random == nil {
		random = globalRandom{}
	}
	if now == nil {
		now = time.Now
	}
	return &historySynthesizerImpl{random: random, now: now}
}

// Synthesize implements port.HistorySynthesizer. Point i days before today is scaled by
// a uniform factor in [0.95, 1.05) and a linear 1% per day discount.
func (h *historySynthesizerImpl) Synthesize(currentTotal float64) []entity.PortfolioPoint {
	today := h.now().UTC()
	points := make([]entity.PortfolioPoint, 0, HistoryPoints)

	for i := HistoryPoints - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		factor := 0.95 + h.random.Float64()*0.1
		value := currentTotal * factor * (1 - 0.01*float64(i))

		points = append(points, entity.PortfolioPoint{
			Date:  date.Format(time.DateOnly),
			Value: utils.Round2(value),
		})
	}
	return points
}
