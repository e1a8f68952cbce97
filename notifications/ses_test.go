package notifications

import (
	"github.com/silinternational/terra/domain"
)

// TestSendRaw can be used in a local environment for development. Add SES credentials to the appropriate
// environment variables, and change the "To" and "From" email addresses to valid addresses.
func (ts *TestSuite) TestSendRaw() {
	ts.T().Skip("only for use in local environment if configured with SES credentials")
	raw := rawEmail("me@example.com", domain.Env.EmailFromAddress, "test subject", `<h4>body</h4>`)
	ts.NoError(SendRaw(domain.Env.EmailFromAddress, raw))
}
