package domain

const minCredentialLen = 6

func (c Credentials) Validate() error {
	if c.Username == "" {
		return ErrUsernameRequired
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func (r Registration) Validate() error {
	if r.Username == "" {
		return ErrUsernameRequired
	}
	if len(r.Username) < minCredentialLen {
		return ErrUsernameTooShort
	}
	if r.Password == "" {
		return ErrPasswordRequired
	}
	if len(r.Password) < minCredentialLen {
		return ErrPasswordTooShort
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
