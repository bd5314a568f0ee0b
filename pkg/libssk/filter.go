package libssk

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidIdentifier returns true if id can be safely quoted in a filter expression.
// Identifiers are made of ASCII letters, digits and hyphens.
func ValidIdentifier(id string) bool {
	return identifier.MatchString(id)
}

// ValidValue returns true if v can be safely quoted in a filter expression.
func ValidValue(v string) bool {
	return v != "" && !strings.ContainsAny(v, "\"\\\n\r")
}

// Eq returns the `attribute = "value"` clause.
// It panics if the value cannot be quoted.
func Eq(attribute, value string) string {
	if !ValidValue(value) {
		panic(fmt.Sprintf("libssk: invalid filter value for %s: %q", attribute, value))
	}
	return fmt.Sprintf(`%s = "%s"`, attribute, value)
}

// And joins the given clauses with AND. Empty clauses are ignored.
func And(clauses ...string) string {
	return join(" AND ", clauses)
}

// Or joins the given clauses with OR inside parentheses. Empty clauses are ignored.
func Or(clauses ...string) string {
	s := join(" OR ", clauses)
	if strings.Contains(s, " OR ") {
		return "(" + s + ")"
	}
	return s
}

func join(sep string, clauses []string) string {
	nonempty := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			nonempty = append(nonempty, c)
		}
	}
	return strings.Join(nonempty, sep)
}

// FoodFromList returns the filter restricting hits to the foods of the given list.
// When ownerID is not empty, hits are also restricted to that owner.
//
// listID must be a valid identifier and ownerID must be empty or a valid identifier,
// it panics otherwise. Callers are expected to validate user input with ValidIdentifier.
func FoodFromList(listID, ownerID string) string {
	if !ValidIdentifier(listID) {
		panic(fmt.Sprintf("libssk: invalid list identifier: %q", listID))
	}

	filter := Eq(AttributeListID, listID)
	if ownerID == "" {
		return filter
	}

	if !ValidIdentifier(ownerID) {
		panic(fmt.Sprintf("libssk: invalid owner identifier: %q", ownerID))
	}
	return And(filter, Eq(AttributeOwnerID, ownerID))
}
