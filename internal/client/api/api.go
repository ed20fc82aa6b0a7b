package api

import "context"

// User is the authenticated admin account.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminSettings is the admin-configurable contact configuration. Field names
// match the backend JSON exactly.
type AdminSettings struct {
	DefaultWhatsAppNumber string `json:"defaultWhatsAppNumber"`
	DefaultCTAMessage     string `json:"defaultCTAMessage"`
}

// DashboardSummary is the admin dashboard counters payload.
type DashboardSummary struct {
	TotalBatches  int `json:"totalBatches"`
	ActiveBatches int `json:"activeBatches"`
	ClosedBatches int `json:"closedBatches"`
}

// Known region and status values. The backend treats both as open sets, so
// unknown values are carried through rather than rejected.
const (
	RegionIndoItali = "indo-itali"
	RegionItaliIndo = "itali-indo"

	StatusActive = "active"
	StatusClosed = "closed"
)

// Batch is a jastip shipment offer. Dates are YYYY-MM-DD strings, matching
// the backend wire format.
type Batch struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Region           string   `json:"region,omitempty"`
	Status           string   `json:"status,omitempty"`
	DepartureDate    string   `json:"departure_date,omitempty"`
	ArrivalDate      string   `json:"arrival_date,omitempty"`
	ImageURLs        []string `json:"image_urls,omitempty"`
	WhatsAppLink     string   `json:"whatsappLink,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// BatchFilter narrows ListBatches. Empty fields mean "all".
type BatchFilter struct {
	Region string
	Status string
}

// LoginResult carries what a successful login produces: the persistable
// credential (the bearer token, or the cookie-session sentinel) and the
// authenticated user.
type LoginResult struct {
	Credential string
	User       User
}

// Client is the API contract the rest of the app programs against.
//
// All methods honor context cancellation/timeouts. Implementations must be
// safe for concurrent use.
type Client interface {
	// Login authenticates and installs the resulting credential on the
	// underlying transport.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout invalidates the server-side session/token. Callers treat
	// failures as non-fatal.
	Logout(ctx context.Context) error
	// SetCredential installs a previously persisted credential (session
	// restore). Empty clears it.
	SetCredential(cred string)
	// Prime runs the auth transport's handshake (CSRF cookie in cookie
	// mode). Login does this implicitly; session restore calls it before
	// the restored credential is first used.
	Prime(ctx context.Context) error

	CurrentUser(ctx context.Context) (*User, error)
	Settings(ctx context.Context) (*AdminSettings, error)
	UpdateSettings(ctx context.Context, s AdminSettings) error
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)
	ChangePassword(ctx context.Context, current, updated, confirm string) error

	ListBatches(ctx context.Context, filter BatchFilter) ([]Batch, error)
	GetBatch(ctx context.Context, id int64) (*Batch, error)
	CreateBatch(ctx context.Context, b Batch) (*Batch, error)
	UpdateBatch(ctx context.Context, id int64, b Batch) (*Batch, error)
	DeleteBatch(ctx context.Context, id int64) error
}
