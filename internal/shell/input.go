package shell

import (
	"fmt"
	"strconv"
	"strings"
)

// readLine reads the next input line. The second return value is false when
// the input stream ends.
func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// readID prompts until the user enters a valid integer id.
func (s *Shell) readID(prompt string) (int64, bool) {
	fmt.Fprintln(s.out, prompt)
	for {
		line, ok := s.readLine()
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Id must be a number")
			continue
		}
		return id, true
	}
}

// readAge prompts until the user enters a non-negative integer age.
func (s *Shell) readAge(prompt string) (int32, bool) {
	fmt.Fprintln(s.out, prompt)
	for {
		line, ok := s.readLine()
		if !ok {
			return 0, false
		}
		age, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil || age < 0 {
			fmt.Fprintln(s.out, "Age must be a non-negative number")
			continue
		}
		return int32(age), true
	}
}

// readRequiredString prompts until the user enters a non-blank line.
func (s *Shell) readRequiredString(prompt string) (string, bool) {
	fmt.Fprintln(s.out, prompt)
	for {
		line, ok := s.readLine()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(s.out, "Field shouldn't be empty")
			continue
		}
		return line, true
	}
}

// readOptionalString reads one line; a blank line means "keep current" and
// returns nil.
func (s *Shell) readOptionalString(prompt string) (*string, bool) {
	fmt.Fprintln(s.out, prompt)
	line, ok := s.readLine()
	if !ok {
		return nil, false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, true
	}
	return &trimmed, true
}

// readOptionalAge reads one line; a blank line returns nil, anything else
// must parse as a non-negative integer or the user is re-prompted.
func (s *Shell) readOptionalAge(prompt string) (*int32, bool) {
	fmt.Fprintln(s.out, prompt)
	for {
		line, ok := s.readLine()
		if !ok {
			return nil, false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return nil, true
		}
		age, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil || age < 0 {
			fmt.Fprintln(s.out, "Age must be a non-negative number")
			continue
		}
		result := int32(age)
		return &result, true
	}
}
