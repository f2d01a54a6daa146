package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the user's
// terminal without echo.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered. The collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetFields reads "name=value" lines until an empty line and returns them
// as a map. Lines without '=' are skipped; a later line overrides an
// earlier one with the same name.
func GetFields(reader *bufio.Reader, w io.Writer) (map[string]any, error) {
	if _, err := fmt.Fprintln(w, "Enter extra fields as name=value (empty line to finish)"); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		fields[name] = strings.TrimSpace(value)
	}
	return fields, nil
}
