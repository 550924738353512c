package subject

import (
	"fmt"
	"strconv"
)

// Arithmetic operators understood by the fact generator.
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "×"
	OpDiv = "÷"
)

// MathConfig bounds the generated fact pool.
type MathConfig struct {
	Operators  []string `yaml:"operators"`
	MaxOperand int      `yaml:"max_operand"` // addends and subtrahends
	MaxSum     int      `yaml:"max_sum"`     // sums and minuends
	MaxFactor  int      `yaml:"max_factor"`  // multiplication and division tables
}

// DefaultMathConfig returns the facts for early primary grades.
func DefaultMathConfig() MathConfig {
	return MathConfig{
		Operators:  []string{OpAdd, OpSub, OpMul, OpDiv},
		MaxOperand: 10,
		MaxSum:     20,
		MaxFactor:  9,
	}
}

// Fact is a single arithmetic fact.
type Fact struct {
	A, B int
	Op   string
}

// Key returns the normalized "operand-operator-operand" identity, e.g. "3+5".
func (f Fact) Key() string {
	return strconv.Itoa(f.A) + f.Op + strconv.Itoa(f.B)
}

// Result computes the answer.
func (f Fact) Result() int {
	switch f.Op {
	case OpAdd:
		return f.A + f.B
	case OpSub:
		return f.A - f.B
	case OpMul:
		return f.A * f.B
	case OpDiv:
		return f.A / f.B
	}
	return 0
}

// GenerateFacts enumerates every fact allowed by cfg. Subtraction never
// goes negative and division is always exact.
func GenerateFacts(cfg MathConfig) ([]Fact, error) {
	var facts []Fact
	for _, op := range cfg.Operators {
		switch op {
		case OpAdd:
			for a := 1; a <= cfg.MaxOperand; a++ {
				for b := 1; b <= cfg.MaxOperand; b++ {
					if a+b <= cfg.MaxSum {
						facts = append(facts, Fact{A: a, B: b, Op: op})
					}
				}
			}
		case OpSub:
			for a := 1; a <= cfg.MaxSum; a++ {
				for b := 1; b <= min(a, cfg.MaxOperand); b++ {
					facts = append(facts, Fact{A: a, B: b, Op: op})
				}
			}
		case OpMul:
			for a := 1; a <= cfg.MaxFactor; a++ {
				for b := 1; b <= cfg.MaxFactor; b++ {
					facts = append(facts, Fact{A: a, B: b, Op: op})
				}
			}
		case OpDiv:
			for q := 1; q <= cfg.MaxFactor; q++ {
				for b := 1; b <= cfg.MaxFactor; b++ {
					facts = append(facts, Fact{A: q * b, B: b, Op: op})
				}
			}
		default:
			return nil, fmt.Errorf("unknown operator %q", op)
		}
	}
	return facts, nil
}

// ParseFact parses a key produced by Fact.Key.
func ParseFact(key string) (Fact, error) {
	for _, op := range []string{OpAdd, OpSub, OpMul, OpDiv} {
		for i := 1; i < len(key); i++ {
			if len(key[i:]) < len(op) || key[i:i+len(op)] != op {
				continue
			}
			a, errA := strconv.Atoi(key[:i])
			b, errB := strconv.Atoi(key[i+len(op):])
			if errA != nil || errB != nil {
				continue
			}
			if op == OpDiv && b == 0 {
				return Fact{}, fmt.Errorf("division by zero in %q", key)
			}
			return Fact{A: a, B: b, Op: op}, nil
		}
	}
	return Fact{}, fmt.Errorf("not a math fact: %q", key)
}

func (f Fact) item(subjectID string) Item {
	return Item{
		Subject: subjectID,
		Text:    f.Key(),
		Prompt:  fmt.Sprintf("%d %s %d = ?", f.A, f.Op, f.B),
		Answer:  strconv.Itoa(f.Result()),
	}
}
