package game

import "testing"

func TestSampleBaseReturnSimulatedIsDeterministic(t *testing.T) {
	e := testEngine(t, nil, ReturnSimulated)
	for day := 0; day < 30; day++ {
		a := e.SampleBaseReturn("sword", day)
		b := e.SampleBaseReturn("sword", day)
		if a != b {
			t.Fatalf("day %d: same day sampled twice gave %v then %v", day, a, b)
		}
	}
}

func TestSampleBaseReturnSimulatedLoops(t *testing.T) {
	e := testEngine(t, nil, ReturnSimulated)
	asset, ok := e.cat.AssetByID("sword")
	if !ok {
		t.Fatalf("sword missing from default catalog")
	}
	n := len(asset.Series)
	if got, want := e.SampleBaseReturn("sword", 1), asset.Series[0]; got != want {
		t.Fatalf("day 1: got %v want %v", got, want)
	}
	if got, want := e.SampleBaseReturn("sword", 2), asset.Series[1]; got != want {
		t.Fatalf("day 2: got %v want %v", got, want)
	}
	if got, want := e.SampleBaseReturn("sword", n+1), asset.Series[0]; got != want {
		t.Fatalf("day %d should wrap to series[0]: got %v want %v", n+1, got, want)
	}
}

func TestSampleBaseReturnUnknownAssetUsesDefaultRange(t *testing.T) {
	e := testEngine(t, &seqRand{vals: []float64{0, 0.5, 0.999}}, ReturnSimulated)
	for i := 0; i < 3; i++ {
		got := e.SampleBaseReturn("no-such-guardian", 1)
		if got < DefaultMinReturn || got > DefaultMaxReturn {
			t.Fatalf("unknown asset return %v outside [%v, %v]", got, DefaultMinReturn, DefaultMaxReturn)
		}
	}
}

func TestSampleBaseReturnRandomStaysInRange(t *testing.T) {
	e := testEngine(t, &seqRand{vals: []float64{0, 0.25, 0.5, 0.75, 0.999}}, ReturnRandom)
	asset, _ := e.cat.AssetByID("crystal")
	for i := 0; i < 5; i++ {
		got := e.SampleBaseReturn("crystal", 3)
		if got < asset.MinReturn || got > asset.MaxReturn {
			t.Fatalf("random return %v outside [%v, %v]", got, asset.MinReturn, asset.MaxReturn)
		}
	}
}

func TestSampleBaseReturnNoSeriesFallsBackToRange(t *testing.T) {
	e := testEngine(t, &seqRand{vals: []float64{0.5}}, ReturnSimulated)
	e.cat.Assets = append(e.cat.Assets, e.cat.Assets[0])
	e.cat.Assets[len(e.cat.Assets)-1].ID = "seriesless"
	e.cat.Assets[len(e.cat.Assets)-1].Series = nil
	e.cat.Assets[len(e.cat.Assets)-1].MinReturn = -0.02
	e.cat.Assets[len(e.cat.Assets)-1].MaxReturn = 0.02

	got := e.SampleBaseReturn("seriesless", 4)
	if got < -0.02 || got > 0.02 {
		t.Fatalf("seriesless asset return %v outside its range", got)
	}
}
