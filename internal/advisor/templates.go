package advisor

import (
	"context"
	"fmt"

	"skyland/internal/game"
)

// Templates is the offline generator: it picks a scripted line from the
// settlement numbers. It never fails, which makes it the default wiring
// when no advisor service is configured.
type Templates struct{}

func NewTemplates() *Templates {
	return &Templates{}
}

func (Templates) Generate(_ context.Context, pc game.PromptContext) (string, error) {
	if pc.Settlement == nil {
		return "Your guardians await orders. Spread the power and press on!", nil
	}
	ret := pc.Settlement.PortfolioReturn
	best, worst := bestAndWorst(pc.Settlement.PerAsset)
	switch {
	case ret > 0.02:
		return fmt.Sprintf("A splendid day! %s led the charge and the island gained %d coins. Remember, windfalls fade; balance keeps you flying.", best, pc.Settlement.CoinDelta), nil
	case ret > 0:
		return fmt.Sprintf("Gentle tailwinds today. %s did its part and you are up %d coins.", best, pc.Settlement.CoinDelta), nil
	case ret == 0:
		return "A flat day across the skies. Sometimes holding steady is the bravest move.", nil
	case ret > -0.02:
		return fmt.Sprintf("A few clouds: %s struggled and you gave back %d coins. Diversified islands weather small storms.", worst, -pc.Settlement.CoinDelta), nil
	default:
		return fmt.Sprintf("A rough day, guardian. %s took the worst of it. Storms pass; panic selling sinks more ships than storms do.", worst), nil
	}
}

func bestAndWorst(perAsset []game.AssetSettlement) (best, worst string) {
	if len(perAsset) == 0 {
		return "the portfolio", "the portfolio"
	}
	bi, wi := 0, 0
	for i, a := range perAsset {
		if a.ContributionFraction > perAsset[bi].ContributionFraction {
			bi = i
		}
		if a.ContributionFraction < perAsset[wi].ContributionFraction {
			wi = i
		}
	}
	return perAsset[bi].ID, perAsset[wi].ID
}
