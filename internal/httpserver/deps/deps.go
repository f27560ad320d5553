package deps

import (
	"time"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/files"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts        []string // Host headers allowed to access the dashboard
	AllowedCIDRS        []string // IPs allowed to access healthz/readyz endpoints
	TrustProxy          bool     // true if running behind a trusted reverse proxy
	ControlBurst        int      // rate limit burst for service actions
	ControlRefillPerMin int      // rate limit refill for service actions

	Catalog  *domain.Catalog        // Configured projects (read-only)
	Services domain.ServiceManager  // systemctl
	Sampler  domain.ResourceSampler // host CPU/memory/disk
	Files    *files.Browser         // Whitelisted file access under project roots

	Journal        domain.Journal // Control action history
	JournalBackend string         // "memory" or "redis"
	JournalSize    int            // Max records kept by the journal

	Page     []byte // Embedded dashboard page
	PageFile string // On-disk dashboard page, overrides Page when set
}

// Now returns d.TimeNow() or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
