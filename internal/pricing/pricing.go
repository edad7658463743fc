// Package pricing converts American odds, removes the vig from two-way
// markets and sizes stakes with a capped Kelly fraction.
package pricing

import "math"

// RiskThresholds classifies a model/book deviation into the three tiers the
// report colors by.
type RiskThresholds struct {
	Low    float64 `yaml:"low"`
	Medium float64 `yaml:"medium"`
}

func (t RiskThresholds) Classify(diff float64) string {
	if diff <= t.Low {
		return "Low"
	}
	if diff <= t.Medium {
		return "Med"
	}
	return "High"
}

// Engine holds the tunable pricing parameters. The zero value is not useful;
// start from DefaultEngine.
type Engine struct {
	Probability RiskThresholds
	Line        RiskThresholds
	KellyCap    float64
}

func DefaultEngine() Engine {
	return Engine{
		Probability: RiskThresholds{Low: 0.02, Medium: 0.05},
		Line:        RiskThresholds{Low: 0.5, Medium: 1.5},
		KellyCap:    0.01,
	}
}

// AmericanToProbability returns the implied probability of American odds,
// vig included.
func AmericanToProbability(odds int) float64 {
	if odds < 0 {
		return float64(-odds) / float64(-odds+100)
	}
	return 100 / float64(odds+100)
}

// ProbabilityToAmerican is the rounded inverse of AmericanToProbability.
func ProbabilityToAmerican(prob float64) int {
	prob = math.Max(1e-6, math.Min(0.999999, prob))
	if prob > 0.5 {
		return int(math.Round(-prob / (1 - prob) * 100))
	}
	return int(math.Round((1 - prob) / prob * 100))
}

func AmericanToDecimal(odds int) float64 {
	if odds > 0 {
		return 1 + float64(odds)/100
	}
	return 1 + 100/float64(-odds)
}

// DevigTwoWay removes the vig from a two-way market by proportional scaling,
// returning fair probabilities that sum to 1.
func DevigTwoWay(priceA, priceB int) (float64, float64) {
	pa := AmericanToProbability(priceA)
	pb := AmericanToProbability(priceB)
	total := pa + pb
	if total == 0 {
		return 0.5, 0.5
	}
	return pa / total, pb / total
}

func EdgePercentage(modelProb, bookProb float64) float64 {
	return modelProb - bookProb
}

// KellyFraction returns the Kelly stake for modelProb at the given odds,
// floored at zero and capped.
func (e Engine) KellyFraction(modelProb float64, odds int) float64 {
	b := AmericanToDecimal(odds) - 1
	if b == 0 {
		return 0
	}
	q := 1 - modelProb
	kelly := (modelProb*b - q) / b
	return math.Max(0, math.Min(e.KellyCap, kelly))
}

// MarketComparison is the model-versus-book verdict for one side of a market.
type MarketComparison struct {
	FairValue float64
	BookValue float64
	Diff      float64
	Edge      float64
	Kelly     float64
	Risk      string
}

// CompareProbabilityMarket compares a model probability against a two-way
// priced market (moneyline, prop over/under). side selects which price backs
// the bet: "over", "home" and "yes" take priceA.
func (e Engine) CompareProbabilityMarket(modelProb float64, priceA, priceB int, side string) MarketComparison {
	fairA, fairB := DevigTwoWay(priceA, priceB)
	var bookProb float64
	var odds int
	switch side {
	case "over", "home", "yes":
		bookProb = fairA
		odds = priceA
	default:
		bookProb = fairB
		odds = priceB
	}
	diff := math.Abs(modelProb - bookProb)
	return MarketComparison{
		FairValue: modelProb,
		BookValue: bookProb,
		Diff:      diff,
		Edge:      EdgePercentage(modelProb, bookProb),
		Kelly:     e.KellyFraction(modelProb, odds),
		Risk:      e.Probability.Classify(diff),
	}
}

// CompareLineMarket compares a model line against a book line (spread,
// total). Edge is approximated by valuing each point of line difference at a
// tenth of probability.
func (e Engine) CompareLineMarket(modelLine, bookLine float64, priceA, priceB int, side string) MarketComparison {
	diff := math.Abs(modelLine - bookLine)
	var odds int
	if side == "home" || side == "over" {
		odds = priceA
	} else {
		odds = priceB
	}
	modelProb := 0.5 + (modelLine-bookLine)/10
	modelProb = math.Max(0.01, math.Min(0.99, modelProb))
	bookProb, _ := DevigTwoWay(priceA, priceB)
	return MarketComparison{
		FairValue: modelLine,
		BookValue: bookLine,
		Diff:      diff,
		Edge:      EdgePercentage(modelProb, bookProb),
		Kelly:     e.KellyFraction(modelProb, odds),
		Risk:      e.Line.Classify(diff),
	}
}
