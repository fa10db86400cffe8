package email

// Provider identifies a supported mail transport.
type Provider string

const (
	ProviderGmail    Provider = "gmail"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
	ProviderZoho     Provider = "zoho"
)

// Config holds mail transport configuration. It is built once at
// startup from the environment and injected into the service.
type Config struct {
	Service    Provider
	From       string
	AdminEmail string

	GmailUser      string
	GmailPassword  string
	SendgridAPIKey string
	SESHost        string
	SESUser        string
	SESPassword    string
	ZohoHost       string
	ZohoUser       string
	ZohoPassword   string
}
