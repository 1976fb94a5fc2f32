// ABOUTME: Client-side input validation mirroring the server's rules
// ABOUTME: Rejects bad input before it costs a network round trip

package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/basgenix/uni-complaint-system/internal/api"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email checks the address against the same format and length rules
// the server enforces.
func Email(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 120 {
		return fmt.Errorf("email must be less than 120 characters")
	}
	return nil
}

// Password checks the server's strength rules: 8 to 128 characters
// with at least one uppercase letter, one lowercase letter, and one
// digit.
func Password(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be less than 128 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !lower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !digit {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

// Required reports the first named value that is empty
func Required(fields map[string]string, order ...string) error {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Status rejects values outside the complaint status vocabulary
func Status(status string) error {
	return oneOf("status", status, api.ValidStatuses)
}

// Priority rejects values outside the priority vocabulary
func Priority(priority string) error {
	return oneOf("priority", priority, api.ValidPriorities)
}

// Category rejects values outside the complaint category vocabulary
func Category(category string) error {
	return oneOf("category", category, api.ValidCategories)
}

func oneOf(name, value string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (valid: %s)", name, value, strings.Join(valid, ", "))
}
