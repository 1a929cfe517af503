// Package rating implements the two-player TrueSkill update used to rank
// ladder players.
//
// Naming follows the conventions of Herbrich, Minka and Graepel's "TrueSkill:
// A Bayesian Skill Rating System":
//   - Mu: the mean of the belief distribution over a player's skill.
//   - Sigma: the standard deviation of that belief.
//   - Beta: the performance variance, randomness in a single game that is
//     independent of skill.
//   - Tau: the dynamics term, a small variance injected on every update so
//     ratings stay adaptive instead of freezing as Sigma shrinks.
//   - V, W: the truncated-Gaussian correction terms converting a win/loss
//     observation into a mean shift and a variance reduction.
//
// Only the 1v1 win/loss case is implemented, draws are not rated.
package rating

import (
	"errors"
	"math"
)

const (
	// DefaultMu is the mean every new player starts at.
	DefaultMu = 25.0

	// DefaultSigma is the uncertainty every new player starts at.
	DefaultSigma = DefaultMu / 3.0

	// Beta is the performance variance shared by all players.
	Beta = DefaultSigma / 2.0

	// Tau keeps Sigma from collapsing to zero over many games.
	Tau = DefaultSigma / 100.0

	// DrawProbability is the assumed chance of a draw between two players
	// of equal skill. Draw outcomes are rejected upstream but the win
	// margin still depends on this value.
	DrawProbability = 0.10

	// varianceFloorRatio bounds how much of its variance a single game can
	// take away from a player.
	varianceFloorRatio = 1e-4
)

// A Rating is a player's skill estimate.
type Rating struct {
	Mu    float64
	Sigma float64
}

// New returns the rating assigned to a player who never played a game.
func New() Rating {
	return Rating{Mu: DefaultMu, Sigma: DefaultSigma}
}

var (
	ErrEqualScores      = errors.New("cannot rate a draw")
	ErrNonPositiveSigma = errors.New("sigma must be > 0")
)

// Update returns the ratings of both players revised with the outcome of a
// single game, in the same order they were given. The winner is resolved
// internally by comparing the scores, which must not be equal.
//
// The update is a pure function of its inputs: identical inputs produce
// bit-for-bit identical outputs.
func Update(a Rating, scoreA int, b Rating, scoreB int) (Rating, Rating, error) {
	if a.Sigma <= 0 || b.Sigma <= 0 {
		return Rating{}, Rating{}, ErrNonPositiveSigma
	}
	if scoreA == scoreB {
		return Rating{}, Rating{}, ErrEqualScores
	}

	if scoreA > scoreB {
		winner, loser := rate1vs1(a, b)
		return winner, loser, nil
	}

	winner, loser := rate1vs1(b, a)
	return loser, winner, nil
}

// rate1vs1 computes the posterior ratings of the winner and loser of a game.
// The dynamics term is folded into each prior variance before the update so
// uncertainty regrows a little even when a game reduces it.
func rate1vs1(winner, loser Rating) (Rating, Rating) {
	winnerVar := winner.Sigma*winner.Sigma + Tau*Tau
	loserVar := loser.Sigma*loser.Sigma + Tau*Tau

	c2 := winnerVar + loserVar + 2*Beta*Beta
	c := math.Sqrt(c2)

	t := (winner.Mu - loser.Mu) / c
	eps := drawMargin(DrawProbability, Beta) / c

	v := vWin(t, eps)
	w := wWin(t, eps)

	return Rating{
			Mu:    winner.Mu + (winnerVar/c)*v,
			Sigma: math.Sqrt(winnerVar * math.Max(1-(winnerVar/c2)*w, varianceFloorRatio)),
		}, Rating{
			Mu:    loser.Mu - (loserVar/c)*v,
			Sigma: math.Sqrt(loserVar * math.Max(1-(loserVar/c2)*w, varianceFloorRatio)),
		}
}

// vWin is the additive mean correction for a win observation, the expected
// amount by which the winner outperformed the margin.
func vWin(t, eps float64) float64 {
	denom := normCDF(t - eps)
	if denom < math.SmallestNonzeroFloat64 {
		// Deep in the tail the ratio degenerates to its asymptote.
		return eps - t
	}

	return normPDF(t-eps) / denom
}

// wWin is the multiplicative variance correction for a win observation,
// within (0, 1).
func wWin(t, eps float64) float64 {
	v := vWin(t, eps)
	return v * (v + t - eps)
}

// drawMargin converts a draw probability into the performance margin below
// which a game between two players would end in a draw.
func drawMargin(p, beta float64) float64 {
	return normPPF((p+1)/2) * math.Sqrt2 * beta
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return math.Erfc(-x/math.Sqrt2) / 2
}

// Coefficients of Acklam's rational approximation of the normal quantile,
// accurate to ~1.15e-9 over (0, 1).
var (
	ppfA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	ppfB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	ppfC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	ppfD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}
)

// normPPF is the inverse of normCDF.
func normPPF(p float64) float64 {
	const low = 0.02425

	switch {
	case p <= 0 || p >= 1:
		panic("normPPF: p out of range")
	case p < low:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((ppfC[0]*q+ppfC[1])*q+ppfC[2])*q+ppfC[3])*q+ppfC[4])*q + ppfC[5]) /
			((((ppfD[0]*q+ppfD[1])*q+ppfD[2])*q+ppfD[3])*q + 1)
	case p > 1-low:
		return -normPPF(1 - p)
	default:
		q := p - 0.5
		r := q * q
		return (((((ppfA[0]*r+ppfA[1])*r+ppfA[2])*r+ppfA[3])*r+ppfA[4])*r + ppfA[5]) * q /
			(((((ppfB[0]*r+ppfB[1])*r+ppfB[2])*r+ppfB[3])*r+ppfB[4])*r + 1)
	}
}
