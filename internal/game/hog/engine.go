package hog

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the final score pair of a game, Player 0 first.
type Result struct {
	Score0 int
	Score1 int
}

// Winner returns 0 if Player 0 finished strictly ahead, and 1 otherwise.
func (r Result) Winner() int {
	if r.Score0 > r.Score1 {
		return 0
	}
	return 1
}

// Turn is the audit record of one resolved turn.
type Turn struct {
	Number   int  // 1-based turn index within the game
	Player   int  // 0 or 1
	NumRolls int  // dice chosen by the strategy
	Gain     int  // points scored by Player
	Penalty  int  // points handed to the opponent on a zero-point turn
	HogWild  bool // true when the Hog Wild dice were used
	Swapped  bool // true when the scores were exchanged after the turn
	Score0   int  // Player 0's score after the turn
	Score1   int  // Player 1's score after the turn
}

// Engine runs games of Hog.
//
// An Engine is single-owner: its dice may carry state, so concurrent games
// need separate engines.
type Engine struct {
	dice   DiceSet
	goal   int
	logger *zap.Logger

	// OnTurn, if set, is called after every resolved turn. nil = no-op.
	OnTurn func(Turn)
}

// NewEngine creates an Engine that plays to goal with the given dice.
//
// Precondition: set.Standard and set.HogWild must be non-nil; logger must be
// non-nil; 1 <= goal <= GoalScore.
func NewEngine(set DiceSet, goal int, logger *zap.Logger) *Engine {
	if set.Standard == nil || set.HogWild == nil {
		panic("hog: NewEngine precondition violated: both dice must be non-nil")
	}
	if logger == nil {
		panic("hog: NewEngine precondition violated: logger must not be nil")
	}
	if goal < 1 || goal > GoalScore {
		panic(fmt.Sprintf("hog: NewEngine precondition violated: goal must be in [1, %d], got %d", GoalScore, goal))
	}
	return &Engine{dice: set, goal: goal, logger: logger}
}

// Goal returns the score that ends a game.
func (e *Engine) Goal() int { return e.goal }

// Dice returns the engine's dice.
func (e *Engine) Dice() DiceSet { return e.dice }

// Play simulates a game from 0-0 and returns the final scores.
//
// Precondition: s0 and s1 must be non-nil.
func (e *Engine) Play(s0, s1 Strategy) Result {
	return e.PlayFrom(s0, s1, 0, 0)
}

// PlayFrom simulates a game starting from the given scores. Player 0 moves
// first.
//
// Each turn the active player's strategy picks a number of dice; the turn is
// resolved with the dice selected for the current scores; a zero-point turn
// hands the rolled dice count to the opponent; finally the scores are
// exchanged if they are digit reversals of each other.
//
// Precondition: s0 and s1 must be non-nil; score0 and score1 must be >= 0.
// Postcondition: at least one score in the result is >= Goal().
func (e *Engine) PlayFrom(s0, s1 Strategy, score0, score1 int) Result {
	if s0 == nil || s1 == nil {
		panic("hog: Play precondition violated: strategies must be non-nil")
	}
	if score0 < 0 || score1 < 0 {
		panic(fmt.Sprintf("hog: Play precondition violated: scores must be non-negative, got %d and %d", score0, score1))
	}

	gameID := uuid.New().String()
	strategies := [2]Strategy{s0, s1}
	scores := [2]int{score0, score1}
	player := 0
	turns := 0

	for scores[0] < e.goal && scores[1] < e.goal {
		turns++
		opponent := Other(player)
		wild := IsHogWild(scores[0], scores[1])
		selected := SelectDice(scores[0], scores[1], e.dice)

		numRolls := strategies[player].NumRolls(scores[player], scores[opponent])
		gain := TakeTurn(numRolls, scores[opponent], selected)
		scores[player] += gain

		penalty := 0
		if gain == 0 {
			penalty = numRolls
			scores[opponent] += penalty
		}

		swapped := IsSwap(scores[0], scores[1])
		if swapped {
			scores[0], scores[1] = scores[1], scores[0]
		}

		turn := Turn{
			Number:   turns,
			Player:   player,
			NumRolls: numRolls,
			Gain:     gain,
			Penalty:  penalty,
			HogWild:  wild,
			Swapped:  swapped,
			Score0:   scores[0],
			Score1:   scores[1],
		}
		e.logger.Debug("turn resolved",
			zap.String("game_id", gameID),
			zap.Int("turn", turn.Number),
			zap.Int("player", turn.Player),
			zap.Int("num_rolls", turn.NumRolls),
			zap.Int("gain", turn.Gain),
			zap.Int("penalty", turn.Penalty),
			zap.Bool("hog_wild", turn.HogWild),
			zap.Bool("swapped", turn.Swapped),
			zap.Int("score0", turn.Score0),
			zap.Int("score1", turn.Score1),
		)
		if e.OnTurn != nil {
			e.OnTurn(turn)
		}

		player = opponent
	}

	result := Result{Score0: scores[0], Score1: scores[1]}
	e.logger.Debug("game over",
		zap.String("game_id", gameID),
		zap.Int("turns", turns),
		zap.Int("score0", result.Score0),
		zap.Int("score1", result.Score1),
		zap.Int("winner", result.Winner()),
	)
	return result
}
