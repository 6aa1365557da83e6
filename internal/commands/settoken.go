// Package commands holds interactive operator commands.
package commands

import (
	"bufio"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/beekeepergroup/legislative-calendar/internal/publish"
)

// SetToken prompts for git push credentials and stores them in the auth
// file. The token is read with masked input unless insecureUnmask is set.
func SetToken(overwrite, insecureUnmask bool) error {
	path, err := publish.AuthFilePath()
	if err != nil {
		return err
	}

	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	var token, tokenConfirm string
	if insecureUnmask {
		fmt.Fprintln(os.Stderr, "WARNING: token will be visible on screen")
		fmt.Print("Enter token:   ")
		if _, err := fmt.Scanln(&token); err != nil {
			return fmt.Errorf("error reading token: %w", err)
		}
		fmt.Print("Confirm token: ")
		if _, err := fmt.Scanln(&tokenConfirm); err != nil {
			return fmt.Errorf("error reading token confirmation: %w", err)
		}
	} else {
		token = readTokenWithMask("Enter token:   ")
		tokenConfirm = readTokenWithMask("Confirm token: ")
	}

	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if token != tokenConfirm {
		return fmt.Errorf("tokens do not match")
	}

	if err := publish.SaveToken(path, username, token, overwrite); err != nil {
		return err
	}

	fmt.Printf("Credentials saved to %s\n", path)
	return nil
}

// readTokenWithMask reads token input and displays asterisks
func readTokenWithMask(prompt string) string {
	fmt.Print(prompt)

	// Save original terminal state
	oldState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		// Fallback to hidden input if we can't set raw mode
		token, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(token)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	// Set terminal to raw mode
	if _, err := term.MakeRaw(int(syscall.Stdin)); err != nil {
		token, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(token)
	}

	var token []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter key
			fmt.Println()
			return string(token)
		case 127, 8: // Backspace or Delete
			if len(token) > 0 {
				token = token[:len(token)-1]
				// Clear the asterisk: backspace, space, backspace
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Println()
			os.Exit(1)
		default:
			// Only accept printable characters
			if char >= 32 && char <= 126 {
				token = append(token, byte(char))
				fmt.Print("*")
			}
		}
	}

	fmt.Println()
	return string(token)
}
