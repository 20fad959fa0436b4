package models

// Validate checks if the identity meets all validation requirements
func (i *Identity) Validate() error {
	return validate.Struct(i)
}

// Validate checks the registration payload, including that the password
// confirmation matches the password.
func (r *Registration) Validate() error {
	return validate.Struct(r)
}
