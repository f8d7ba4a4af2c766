// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Question validates a question is non-empty after trimming whitespace.
func Question(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("question is required")
	}
	return nil
}

// QuestionField returns a criterio validator for question text.
func QuestionField(field, q string) error {
	return criterio.Run(field, q, Question)
}

// BookID validates a book identifier is non-empty.
func BookID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("book id is required")
	}
	return nil
}

// BookIDField returns a criterio validator for book identifiers.
func BookIDField(field, id string) error {
	return criterio.Run(field, id, BookID)
}
