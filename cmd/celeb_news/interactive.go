package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/celeb-news/internal/pipeline"
	"github.com/jonathan/celeb-news/internal/search"
)

// promptAnswers holds the raw answers of an interactive session.
type promptAnswers struct {
	Name   string
	Count  int
	Amount *int
	Unit   *string
}

// promptRequest asks for the subject, article count and optional recency filter.
// A blank or non-numeric count keeps defaultCount.
func promptRequest(in io.Reader, out io.Writer, defaultCount int) (promptAnswers, error) {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) (string, error) {
		_, _ = fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", nil
		}
		return strings.TrimSpace(scanner.Text()), nil
	}

	var answers promptAnswers

	name, err := ask("Enter celebrity name: ")
	if err != nil {
		return answers, err
	}
	answers.Name = name

	answers.Count = defaultCount
	countText, err := ask(fmt.Sprintf("Articles to fetch [%d]: ", defaultCount))
	if err != nil {
		return answers, err
	}
	if n, convErr := strconv.Atoi(countText); convErr == nil && n > 0 {
		answers.Count = n
	}

	useFilter, err := ask("Filter by recency? (y/N): ")
	if err != nil {
		return answers, err
	}
	if !strings.EqualFold(useFilter, "y") {
		return answers, nil
	}

	amountText, err := ask("  Number of units (e.g. 7): ")
	if err != nil {
		return answers, err
	}
	// Unparseable amounts are passed on as 0 and rejected by filter validation.
	amount, _ := strconv.Atoi(amountText)
	answers.Amount = &amount

	unit, err := ask("  Unit (day, week, month): ")
	if err != nil {
		return answers, err
	}
	unit = strings.ToLower(unit)
	answers.Unit = &unit

	return answers, nil
}

// request validates the answers into a pipeline request.
func (a promptAnswers) request() (pipeline.Request, error) {
	filter, err := search.NewRecencyFilter(a.Amount, a.Unit)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{Name: a.Name, Filter: filter, Count: a.Count}, nil
}
