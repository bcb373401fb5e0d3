package council

// responseLabel returns the anonymized label for response slot i: "A"
// through "Z", then "AA", "AB" and so on, spreadsheet style.
func responseLabel(i int) string {
	label := ""
	n := i + 1
	for n > 0 {
		n--
		label = string(rune('A'+n%26)) + label
		n /= 26
	}
	return label
}
