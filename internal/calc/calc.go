// Package calc evaluates arithmetic expressions written in prefix (Polish)
// notation, such as "* 10 + 1.23 4.56", using exact decimal arithmetic.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/bcnum"
)

// Errors returned by [Evaluate] for malformed expressions.
var (
	ErrNoTokens         = errors.New("no tokens")
	ErrNotEnoughOperand = errors.New("not enough operands")
	ErrExtraOperands    = errors.New("too many operands")
)

// Operators lists the supported operators.
// All of them are binary, except for "sqrt".
var Operators = []string{"+", "-", "*", "/", "%", "^", "sqrt"}

// Evaluate parses and evaluates an expression in prefix notation.
// Tokens are separated by white space; numbers use the format of [bcnum.Parse].
func Evaluate(input string) (bcnum.Decimal, error) {
	tokens, err := parseTokens(input)
	if err != nil {
		return bcnum.Decimal{}, fmt.Errorf("parsing tokens: %w", err)
	}
	stack, err := processTokens(tokens)
	if err != nil {
		return bcnum.Decimal{}, fmt.Errorf("processing tokens: %w", err)
	}
	if len(stack) != 1 {
		return bcnum.Decimal{}, fmt.Errorf("post-processed stack contains %v: %w", stack, ErrExtraOperands)
	}
	return stack[0], nil
}

func parseTokens(input string) ([]string, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}
	return tokens, nil
}

func processTokens(tokens []string) ([]bcnum.Decimal, error) {
	stack := make([]bcnum.Decimal, 0, len(tokens))
	var err error
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		switch token {
		case "+", "-", "*", "/", "%", "^":
			stack, err = processBinary(stack, token)
		case "sqrt":
			stack, err = processUnary(stack, token)
		default:
			stack, err = processOperand(stack, token)
		}
		if err != nil {
			return nil, fmt.Errorf("processing token %q: %w", token, err)
		}
	}
	return stack, nil
}

func processBinary(stack []bcnum.Decimal, token string) ([]bcnum.Decimal, error) {
	if len(stack) < 2 {
		return nil, ErrNotEnoughOperand
	}
	right := stack[len(stack)-2]
	left := stack[len(stack)-1]
	stack = stack[:len(stack)-2]
	var result bcnum.Decimal
	var err error
	switch token {
	case "+":
		result, err = left.Add(right)
	case "-":
		result, err = left.Sub(right)
	case "*":
		result, err = left.Mul(right)
	case "/":
		result, err = left.Div(right)
	case "%":
		result, err = left.Mod(right)
	case "^":
		result, err = left.Pow(right)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating \"%s %s %s\": %w", left, token, right, err)
	}
	return append(stack, result), nil
}

func processUnary(stack []bcnum.Decimal, token string) ([]bcnum.Decimal, error) {
	if len(stack) < 1 {
		return nil, ErrNotEnoughOperand
	}
	arg := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	result, err := arg.Sqrt()
	if err != nil {
		return nil, fmt.Errorf("evaluating \"%s %s\": %w", token, arg, err)
	}
	return append(stack, result), nil
}

func processOperand(stack []bcnum.Decimal, token string) ([]bcnum.Decimal, error) {
	d, err := bcnum.Parse(token)
	if err != nil {
		return nil, err
	}
	return append(stack, d), nil
}
