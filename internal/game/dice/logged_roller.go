package dice

import "go.uber.org/zap"

// LoggedDice wraps Dice and logs every outcome at debug level.
type LoggedDice struct {
	name   string
	dice   Dice
	logger *zap.Logger
}

// NewLoggedDice returns Dice that delegate to d and log each outcome to logger.
//
// Precondition: d and logger must be non-nil.
func NewLoggedDice(name string, d Dice, logger *zap.Logger) *LoggedDice {
	if d == nil {
		panic("dice: NewLoggedDice precondition violated: dice must not be nil")
	}
	if logger == nil {
		panic("dice: NewLoggedDice precondition violated: logger must not be nil")
	}
	return &LoggedDice{name: name, dice: d, logger: logger}
}

// Roll rolls the wrapped dice and logs the outcome.
func (l *LoggedDice) Roll() int {
	v := l.dice.Roll()
	l.logger.Debug("dice roll",
		zap.String("dice", l.name),
		zap.Int("outcome", v),
	)
	return v
}
