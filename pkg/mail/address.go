package mail

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// maxAddressLength caps the total address length. SMTP permits up to
	// 254 octets for a path; a small margin keeps the check cheap.
	maxAddressLength = 260

	// maxAddressDots caps how many '.' characters an address may contain,
	// bounding regex work on adversarial input.
	maxAddressDots = 16
)

var addressRegex = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,25}$`)

// ValidateAddress checks that an address has a plausible local@domain.tld
// shape. The returned error wraps ErrInvalidAddress and names the rule that
// failed.
func ValidateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: address is empty", ErrInvalidAddress)
	}
	if len(address) > maxAddressLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidAddress, address, maxAddressLength)
	}
	if strings.Count(address, ".") > maxAddressDots {
		return fmt.Errorf("%w: %q has more than %d dot characters", ErrInvalidAddress, address, maxAddressDots)
	}
	if !addressRegex.MatchString(address) {
		return fmt.Errorf("%w: %q is not a valid address", ErrInvalidAddress, address)
	}
	return nil
}

// Recipient formats a name and address into RFC 5322 form.
// Returns "Name <address>" if name is provided, otherwise just the address.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// DedupeAddresses returns addresses with duplicates removed, preserving the
// order of first occurrence. Comparison is case-insensitive.
func DedupeAddresses(addresses []string) []string {
	if len(addresses) < 2 {
		return addresses
	}
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
