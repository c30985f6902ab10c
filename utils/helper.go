package utils

// StringPtr returns a pointer to the string value
func StringPtr(s string) *string {
	return &s
}
