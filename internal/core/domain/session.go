package domain

// Keys of the session entries in the key-value storage.
const (
	SessionTokenKey    = "token"
	SessionUsernameKey = "username"
	SessionBalanceKey  = "balance"
)

// A Session is the auth context of a storefront visitor.
type Session struct {
	ID       string
	Token    string
	Username string
	Balance  int
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

type Credentials struct {
	Username string
	Password string
}

type Registration struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// A Login is the result of a successful authentication.
type Login struct {
	Token    string
	Username string
	Balance  int
}
