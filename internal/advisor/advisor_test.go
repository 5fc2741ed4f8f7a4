package advisor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skyland/internal/game"

	"github.com/stretchr/testify/require"
)

func settlement(ret float64, delta int64, perAsset ...game.AssetSettlement) game.PromptContext {
	return game.PromptContext{
		SessionID: "s1",
		Day:       3,
		Settlement: &game.SettlementResult{
			Day:             3,
			PortfolioReturn: ret,
			CoinDelta:       delta,
			PerAsset:        perAsset,
		},
	}
}

func TestTemplatesNeverFails(t *testing.T) {
	g := NewTemplates()
	contexts := []game.PromptContext{
		{},
		settlement(0.03, 31),
		settlement(0.005, 5),
		settlement(0, 0),
		settlement(-0.005, -5),
		settlement(-0.05, -48),
	}
	for i, pc := range contexts {
		line, err := g.Generate(context.Background(), pc)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if strings.TrimSpace(line) == "" {
			t.Fatalf("case %d: empty line", i)
		}
	}
}

func TestTemplatesNamesBestAndWorst(t *testing.T) {
	g := NewTemplates()
	perAsset := []game.AssetSettlement{
		{ID: "sword", ContributionFraction: 0.03},
		{ID: "crystal", ContributionFraction: -0.01},
	}

	up, err := g.Generate(context.Background(), settlement(0.03, 30, perAsset...))
	require.NoError(t, err)
	require.Contains(t, up, "sword")

	down, err := g.Generate(context.Background(), settlement(-0.01, -10, perAsset...))
	require.NoError(t, err)
	require.Contains(t, down, "crystal")
}

func TestHTTPGeneratorRoundTrip(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/commentary", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" The skies favored you today. "}`))
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "secret")
	line, err := g.Generate(context.Background(), settlement(0.01, 10))
	require.NoError(t, err)
	require.Equal(t, "The skies favored you today.", line)
	require.Equal(t, "Bearer secret", gotAuth)
}

func TestHTTPGeneratorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "")
	_, err := g.Generate(context.Background(), settlement(0.01, 10))
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}
