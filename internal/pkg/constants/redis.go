package constants

// Redis key formats
const (
	KeyWebhookLock   = "billing:webhook:lock:%s:%s" // Format: billing:webhook:lock:{provider}:{ref}
	KeySweepLeader   = "billing:sweep:leader"
	KeyMaintenance   = "portal:maintenance"
	KeyRateLimitUser = "rate:user"
)
